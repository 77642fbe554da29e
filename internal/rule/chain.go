package rule

import (
	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/foundation/core/validation"
)

// Evaluate runs rules against input in order. Unless collectAll is set the
// first failing rule ends evaluation. The returned error carries
// CodeRuleViolation, the violation messages and field as detail.
func Evaluate(field string, rules []Rule, input string, collectAll bool) error {
	if len(rules) == 0 {
		return nil
	}

	chain := validation.NewChain(field).StopOnFirstError(!collectAll)
	for _, r := range rules {
		r := r
		chain.AddFunc(func(value interface{}) validation.Result {
			return r.Apply(value.(string))
		})
	}
	return chain.Validate(input).ToError(dlgerror.CodeRuleViolation)
}
