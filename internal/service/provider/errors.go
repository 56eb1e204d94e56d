// Package provider holds what the upstream price clients share.
package provider

import (
	"errors"

	"FinVault/internal/domain/models"
	pkghttp "FinVault/pkg/http"
)

// Classify maps a pkg/http failure onto the pipeline's error taxonomy:
// undecodable bodies are schema errors, everything else is a network error.
func Classify(source, op string, err error) error {
	if err == nil {
		return nil
	}
	var de *pkghttp.DecodeError
	if errors.As(err, &de) {
		return &models.SourceError{Source: source, Op: op, Kind: models.ErrSchema, Err: err}
	}
	return models.NetworkError(source, op, err)
}
