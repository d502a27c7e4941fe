package model

// Standard vocabulary namespaces used in resource metadata.
const (
	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// LDPNamespace is the W3C Linked Data Platform namespace.
	LDPNamespace = "http://www.w3.org/ns/ldp#"

	// DCTermsNamespace is the Dublin Core terms namespace.
	DCTermsNamespace = "http://purl.org/dc/terms/"

	// XSDNamespace is the XML Schema datatypes namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

	// OntologyNamespace holds repository-managed vocabulary terms.
	OntologyNamespace = "info:lakeland/ontology#"
)

// Predicate IRIs written by the repository.
const (
	// PredType is rdf:type.
	PredType = RDFNamespace + "type"

	// PredCreated is the resource creation timestamp (xsd:dateTime).
	PredCreated = DCTermsNamespace + "created"

	// PredModified is the resource last-modification timestamp.
	PredModified = DCTermsNamespace + "modified"

	// PredContains links a container to a contained resource.
	PredContains = LDPNamespace + "contains"
)

// Class IRIs assigned to resources.
const (
	// ClassResource marks every repository resource.
	ClassResource = LDPNamespace + "Resource"

	// ClassContainer marks resources that may contain others.
	ClassContainer = LDPNamespace + "Container"

	// ClassBasicContainer is the default container interaction model.
	ClassBasicContainer = LDPNamespace + "BasicContainer"

	// ClassNonRDFSource marks resources carrying a binary payload.
	ClassNonRDFSource = LDPNamespace + "NonRDFSource"

	// ClassRepositoryRoot marks the root resource created at bootstrap.
	ClassRepositoryRoot = OntologyNamespace + "RepositoryRoot"
)

// Datatype IRIs for typed literals.
const (
	// TypeDateTime is xsd:dateTime.
	TypeDateTime = XSDNamespace + "dateTime"
)
