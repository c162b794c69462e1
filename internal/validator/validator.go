// Package validator runs the invariant checks (I1-I8) against a completed
// Schedule. It is the last line of defense before a Schedule leaves the
// engine: per spec §7, any violation found here turns a successful solve
// into an internal error rather than an invalid schedule being returned.
package validator

import (
	"fmt"
	"strings"

	"github.com/rhyrak/go-schedule/internal/constraint"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// Validate checks schedule against every committed entity for I1-I8.
// Returns true and an empty message when the schedule is clean.
func Validate(entities model.EntitySet, schedule *model.Schedule) (bool, string) {
	checker := constraint.New(entities)
	violations := checker.Violations(schedule)
	if len(violations) == 0 {
		return true, ""
	}

	var sb strings.Builder
	for _, v := range violations {
		fmt.Fprintf(&sb, "[FAIL] %s\n", v)
	}
	return false, sb.String()
}
