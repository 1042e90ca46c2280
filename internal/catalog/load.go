// Package catalog loads the question and prompt documents that drive the wizard.
//
// Both documents are nested mappings whose key order is significant, so they
// are decoded into an order-preserving Node tree and validated against an
// embedded JSON Schema before anything else sees them.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Document names.
const (
	DocQuestions = "questions"
	DocPrompts   = "prompts"
)

// Catalog holds both loaded documents.
type Catalog struct {
	Questions *Node
	Prompts   *Node
}

// LoadError reports a failure to fetch, decode or validate a document.
// It is fatal for initialization.
type LoadError struct {
	Document string
	Source   string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Document, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load fetches the questions and prompts documents concurrently. Both must
// succeed; on failure no partial catalog is returned.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	var questions, prompts *Node

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := LoadDocument(gctx, src, DocQuestions)
		questions = n
		return err
	})
	g.Go(func() error {
		n, err := LoadDocument(gctx, src, DocPrompts)
		prompts = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Catalog{Questions: questions, Prompts: prompts}, nil
}

// LoadDocument fetches, decodes and validates a single document.
func LoadDocument(ctx context.Context, src Source, name string) (*Node, error) {
	wrap := func(err error) error {
		return &LoadError{Document: name, Source: src.String(), Err: err}
	}

	data, format, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, wrap(fmt.Errorf("fetch: %w", err))
	}

	n, err := Decode(data, format)
	if err != nil {
		return nil, wrap(fmt.Errorf("decode: %w", err))
	}

	if err := validateDocument(name, n); err != nil {
		return nil, wrap(err)
	}
	return n, nil
}
