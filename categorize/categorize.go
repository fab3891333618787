// Package categorize writes the bivariate class pair of every feature into
// a text attribute, using the same classification and class lookup as the
// renderer.
package categorize

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/bivariate"
)

// Class count limits accepted by Run.
const (
	MinClasses = 2
	MaxClasses = 5
)

// DefaultResultField is the attribute written when Params.ResultField is
// empty.
const DefaultResultField = "Category"

// ErrClassCount is returned for a class count outside [MinClasses, MaxClasses].
var ErrClassCount = errors.New("categorize: number of classes must be between 2 and 5")

// Layer is a layer whose features can receive a new text attribute.
type Layer interface {
	bivariate.Layer

	// AddField adds a text field; adding an existing field is a no-op.
	AddField(name string) error

	// SetAttribute sets the text value of field for feature id.
	SetAttribute(id int64, field, value string) error
}

// Params selects the fields to classify and the attribute to write.
type Params struct {
	Field1      string
	Field2      string
	Classes     int
	ResultField string

	// Method classifies both fields; nil means equal interval.
	Method bivariate.ClassificationMethod
}

// Progress receives the share of features processed, 0 to 100.
type Progress func(percent float64)

// Result summarizes a run.
type Result struct {
	Classes1 []bivariate.ClassRange
	Classes2 []bivariate.ClassRange

	// Written is the number of features that received a pair key.
	Written int
}

// Run classifies Field1 and Field2 of l into Classes classes each and writes
// the pair key "{i+1}-{j+1}" of every feature into ResultField.
//
// ctx is checked before each feature. On cancellation Run returns the
// partial Result together with ctx.Err(); values already written stay
// written. A feature that lacks a value or falls outside every class stops
// the run with an error wrapping bivariate.ErrMissingAttribute or
// bivariate.ErrUnclassified.
func Run(ctx context.Context, l Layer, p Params, progress Progress) (Result, error) {
	if p.Classes < MinClasses || p.Classes > MaxClasses {
		return Result{}, fmt.Errorf("%w: got %d", ErrClassCount, p.Classes)
	}
	if p.ResultField == "" {
		p.ResultField = DefaultResultField
	}
	method := p.Method
	if method == nil {
		method = bivariate.NewEqualInterval()
	}
	log := bivariate.Logger()

	var (
		res Result
		err error
	)
	if res.Classes1, err = method.Classes(l, p.Field1, p.Classes); err != nil {
		return Result{}, fmt.Errorf("categorize: %w", err)
	}
	if res.Classes2, err = method.Classes(l, p.Field2, p.Classes); err != nil {
		return Result{}, fmt.Errorf("categorize: %w", err)
	}
	if err := l.AddField(p.ResultField); err != nil {
		return Result{}, fmt.Errorf("categorize: %w", err)
	}

	r := bivariate.NewRenderer(bivariate.WithClassificationMethod(method))
	if err := r.SetNumberOfClasses(p.Classes); err != nil {
		return Result{}, fmt.Errorf("categorize: %w", err)
	}
	cfg := r.Config()
	cfg.Field1, cfg.Field2 = p.Field1, p.Field2
	cfg.Classes1, cfg.Classes2 = res.Classes1, res.Classes2
	if err := r.Configure(cfg); err != nil {
		return Result{}, fmt.Errorf("categorize: %w", err)
	}

	total := l.FeatureCount()
	log.Info("categorize: start",
		"field1", p.Field1, "field2", p.Field2, "classes", p.Classes,
		"method", method.ID(), "features", total)

	for f := range l.Features() {
		if err := ctx.Err(); err != nil {
			log.Info("categorize: canceled", "written", res.Written, "features", total)
			return res, err
		}
		i, j, err := r.Positions(f)
		if err != nil {
			return res, fmt.Errorf("categorize: %w", err)
		}
		if err := l.SetAttribute(f.ID(), p.ResultField, bivariate.PairKey(i, j)); err != nil {
			return res, fmt.Errorf("categorize: %w", err)
		}
		res.Written++
		if progress != nil && total > 0 {
			progress(float64(res.Written) / float64(total) * 100)
		}
	}

	log.Info("categorize: done", "written", res.Written)
	return res, nil
}
