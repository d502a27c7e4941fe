package model

import (
	"fmt"
	"strings"
)

// UID is the unique, path-like identifier of a resource within the
// repository namespace. The repository root is "/". All other UIDs are
// absolute slash-separated paths without a trailing slash, e.g. "/a/b".
type UID string

// RootUID identifies the repository root resource.
const RootUID UID = "/"

// Validate checks the syntactic form of a UID.
func (u UID) Validate() error {
	if u == RootUID {
		return nil
	}
	s := string(u)
	if s == "" || !strings.HasPrefix(s, "/") {
		return fmt.Errorf("uid %q must be an absolute path", s)
	}
	if strings.HasSuffix(s, "/") {
		return fmt.Errorf("uid %q must not end with a slash", s)
	}
	for _, seg := range strings.Split(s[1:], "/") {
		if seg == "" {
			return fmt.Errorf("uid %q contains an empty segment", s)
		}
		if seg == "." || seg == ".." {
			return fmt.Errorf("uid %q contains a relative segment", s)
		}
	}
	return nil
}

// IsRoot tells whether this UID is the repository root.
func (u UID) IsRoot() bool {
	return u == RootUID
}

// Parent returns the UID of the containing resource. The root is its
// own parent.
func (u UID) Parent() UID {
	if u.IsRoot() {
		return RootUID
	}
	i := strings.LastIndex(string(u), "/")
	if i <= 0 {
		return RootUID
	}
	return UID(u[:i])
}

// IsDescendantOf reports whether u lives underneath ancestor. A UID is
// not its own descendant.
func (u UID) IsDescendantOf(ancestor UID) bool {
	if u == ancestor {
		return false
	}
	if ancestor.IsRoot() {
		return true
	}
	return strings.HasPrefix(string(u), string(ancestor)+"/")
}

// RelativeTo returns the path of u relative to ancestor, without a
// leading slash. Returns "" when u equals ancestor.
func (u UID) RelativeTo(ancestor UID) string {
	if u == ancestor {
		return ""
	}
	if ancestor.IsRoot() {
		return strings.TrimPrefix(string(u), "/")
	}
	return strings.TrimPrefix(string(u), string(ancestor)+"/")
}

// Join appends a relative path to a UID.
func (u UID) Join(rel string) UID {
	if rel == "" {
		return u
	}
	if u.IsRoot() {
		return UID("/" + rel)
	}
	return UID(string(u) + "/" + rel)
}

// Namespace is the private URI prefix under which resources of one
// repository instance are named in the graph. The reference protocol
// uses URN-like identifiers, e.g. "info:lakeland/res", so that graph
// data stays valid when the public web root changes.
type Namespace string

// DefaultNamespace is the namespace used when none is configured.
const DefaultNamespace Namespace = "info:lakeland/res"

// URIFor maps a UID to its subject URI. The root resource maps to the
// namespace itself with a trailing slash.
func (n Namespace) URIFor(uid UID) string {
	if uid.IsRoot() {
		return string(n) + "/"
	}
	return string(n) + string(uid)
}

// UIDFor maps an internal URI back to a UID. The second return value
// is false when the URI does not belong to this namespace.
func (n Namespace) UIDFor(uri string) (UID, bool) {
	prefix := string(n) + "/"
	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	// fragment URIs name auxiliary nodes, not resources
	if strings.Contains(uri, "#") {
		return "", false
	}
	rest := uri[len(n):]
	if rest == "/" {
		return RootUID, true
	}
	return UID(strings.TrimSuffix(rest, "/")), true
}

// IsInternal reports whether an object URI names something inside this
// repository, including auxiliary fragment nodes.
func (n Namespace) IsInternal(uri string) bool {
	return strings.HasPrefix(uri, string(n)+"/")
}

// OwnerOf resolves the resource owning a subject URI. For an auxiliary
// node of the form <resource-uri>#<fragment> the owner is the resource
// before the fragment separator.
func (n Namespace) OwnerOf(subject string) (UID, bool) {
	if i := strings.Index(subject, "#"); i >= 0 {
		subject = subject[:i]
	}
	return n.UIDFor(subject)
}

// IsAuxiliary reports whether a subject URI names an auxiliary node.
func (n Namespace) IsAuxiliary(subject string) bool {
	return n.IsInternal(subject) && strings.Contains(subject, "#")
}
