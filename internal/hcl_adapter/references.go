package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalContext exposes every job label as job.<label>, evaluating to the job's
// id.
func evalContext(labels map[string]uint64) *hcl.EvalContext {
	attrs := make(map[string]cty.Value, len(labels))
	for label, id := range labels {
		attrs[label] = cty.NumberUIntVal(id)
	}
	jobs := cty.EmptyObjectVal
	if len(attrs) > 0 {
		jobs = cty.ObjectVal(attrs)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"job": jobs},
	}
}

// decodeRequires evaluates a jobs_req expression into prerequisite ids.
// Elements may be plain numbers or job.<label> references.
func decodeRequires(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]uint64, error) {
	if !isExprDefined(ctx, expr, "jobs_req") {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("jobs_req must be known at load time")
	}

	list, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("jobs_req must be a list of job ids: %w", err)
	}

	if list.LengthInt() == 0 {
		return nil, nil
	}

	// gocty truncates fractional list elements, so whole numbers are checked
	// here.
	i := 0
	for it := list.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("jobs_req[%d] must not be null", i)
		}
		n := elem.AsBigFloat()
		if !n.IsInt() || n.Sign() < 0 {
			return nil, fmt.Errorf("jobs_req[%d] = %s: job ids must be non-negative integers", i, n.Text('g', -1))
		}
	}

	var ids []uint64
	if err := gocty.FromCtyValue(list, &ids); err != nil {
		return nil, fmt.Errorf("jobs_req must contain non-negative integers: %w", err)
	}
	return ids, nil
}
