// This file translates evaluated HCL values into format-agnostic literals,
// computing the shape key of every record on the way.

package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/recordrt/internal/config"
	"github.com/vk/recordrt/internal/ctxlog"
	"github.com/vk/recordrt/internal/shape"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateRecord evaluates a record block into a literal.
func (l *Loader) translateRecord(ctx context.Context, block *recordBlock) (*config.Literal, error) {
	logger := ctxlog.FromContext(ctx)

	positional, err := evalOptional(block.Positional)
	if err != nil {
		return nil, fmt.Errorf("record %q, positional: %w", block.Name, err)
	}
	named, err := evalOptional(block.Named)
	if err != nil {
		return nil, fmt.Errorf("record %q, named: %w", block.Name, err)
	}

	if !positional.IsNull() && !isSequence(positional.Type()) {
		return nil, fmt.Errorf("record %q: positional must be a tuple, got %s", block.Name, positional.Type().FriendlyName())
	}
	if !named.IsNull() && !isMapping(named.Type()) {
		return nil, fmt.Errorf("record %q: named must be an object, got %s", block.Name, named.Type().FriendlyName())
	}

	lit, err := buildLiteral(block.Name, positional, named)
	if err != nil {
		return nil, err
	}
	logger.Debug("Translated record literal.", "name", lit.Name, "key", lit.Key)
	return lit, nil
}

// evalOptional evaluates an optional attribute. An absent attribute yields a
// null value.
func evalOptional(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// buildLiteral assembles a literal from a sequence of positional values and
// a mapping of named values. Either may be null.
func buildLiteral(name string, positional, named cty.Value) (*config.Literal, error) {
	lit := &config.Literal{Name: name}

	if !positional.IsNull() {
		for it := positional.ElementIterator(); it.Next(); {
			_, v := it.Element()
			label := shape.PositionalLabel(lit.Positional)
			elem, err := translateValue(name+"."+label, v)
			if err != nil {
				return nil, err
			}
			lit.Values = append(lit.Values, elem)
			lit.Positional++
		}
	}

	if !named.IsNull() {
		fields := named.AsValueMap()
		labels := make([]string, 0, len(fields))
		for label := range fields {
			if err := shape.ValidateLabel(label); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			elem, err := translateValue(name+"."+label, fields[label])
			if err != nil {
				return nil, err
			}
			lit.Values = append(lit.Values, elem)
		}
		lit.Labels = labels
	}

	if lit.Values == nil {
		lit.Values = []any{}
	}
	lit.Key = shape.DeriveKey(lit.Positional, lit.Labels)
	return lit, nil
}

// translateValue converts a single element value. Tuples and objects become
// nested literals.
func translateValue(path string, v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: value is not known", path)
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		var i int64
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return i, nil
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return f, nil
	case isSequence(ty):
		return buildLiteral(path, v, cty.NullVal(cty.DynamicPseudoType))
	case isMapping(ty):
		return buildLiteral(path, cty.NullVal(cty.DynamicPseudoType), v)
	default:
		return nil, fmt.Errorf("%s: unsupported value of type %s", path, ty.FriendlyName())
	}
}

func isSequence(ty cty.Type) bool {
	return ty.IsTupleType() || ty.IsListType() || ty.IsSetType()
}

func isMapping(ty cty.Type) bool {
	return ty.IsObjectType() || ty.IsMapType()
}
