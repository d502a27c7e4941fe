// Copyright © 2026 Lakeland Data

package cmd

import (
	"github.com/spf13/viper"

	"github.com/lakeland-data/lakeland/pkg/fixity"
	"github.com/lakeland-data/lakeland/pkg/model"
)

const (
	defaultGraphStorePath  = ".lakeland/graph"
	defaultBlobStorePath   = ".lakeland/blobs"
	defaultNamespace       = string(model.DefaultNamespace)
	defaultDigestAlgorithm = fixity.AlgoBlake2b
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// keep field names identical to the serialized names for viper
	GraphStore string `json:"graphstore" yaml:"graphstore"` // graph store directory
	BlobStore  string `json:"blobstore" yaml:"blobstore"`   // binary store directory
	Namespace  string `json:"namespace" yaml:"namespace"`   // private URI namespace
	Digest     string `json:"digest" yaml:"digest"`         // digest algorithm for new payloads
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
