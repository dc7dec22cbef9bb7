// Package script replays a YAML list of Manager operations. It is the
// harness behind the CLI's demo and run commands.
package script

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	yaml "github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"arrivq/internal/sched"
)

// Op names one Manager operation.
type Op string

const (
	OpAdd     Op = "add"
	OpExecute Op = "execute"
	OpList    Op = "list"
	OpCancel  Op = "cancel"
)

// Step is one line of a script.
type Step struct {
	Op       Op     `yaml:"op" validate:"required,oneof=add execute list cancel"`
	ID       string `yaml:"id,omitempty" validate:"required_if=Op cancel"`
	Priority int    `yaml:"priority,omitempty"`
}

func (s Step) String() string {
	switch s.Op {
	case OpAdd:
		return fmt.Sprintf("add %s (priority %d)", s.ID, s.Priority)
	case OpCancel:
		return fmt.Sprintf("cancel %s", s.ID)
	default:
		return string(s.Op)
	}
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps" validate:"min=1,dive"`
}

// Outcome records what one step did.
type Outcome struct {
	Step  Step
	Task  *sched.Task  // executed task, set by execute
	Tasks []sched.Task // pending tasks in arrival order, set by list
	Err   error
}

// Parse decodes and validates a script. Add steps without an id get a
// random one.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrap(err, "parse script")
	}

	for i := range s.Steps {
		s.Steps[i].Op = Op(strings.ToLower(string(s.Steps[i].Op)))
		if s.Steps[i].Op == OpAdd && s.Steps[i].ID == "" {
			s.Steps[i].ID = uuid.NewString()
		}
	}

	if err := validate(s); err != nil {
		return s, err
	}
	return s, nil
}

func validate(s Script) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
	})

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate script")
	}

	e := fieldErrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Script.")
	switch e.Tag() {
	case "required", "required_if":
		return errors.Errorf("'%s' is required", field)
	case "min":
		return errors.Errorf("'%s' must not be empty", field)
	case "oneof":
		return errors.Errorf("'%s' must be one of [%s] (got '%v')", field, e.Param(), e.Value())
	default:
		return errors.Errorf("'%s' failed validation '%s'", field, e.Tag())
	}
}

// Run applies every step to m in order. A failing step is recorded in its
// Outcome and does not stop the run.
func Run(m *sched.Manager, s Script) []Outcome {
	out := make([]Outcome, 0, len(s.Steps))
	for _, st := range s.Steps {
		out = append(out, apply(m, st))
	}
	return out
}

func apply(m *sched.Manager, st Step) Outcome {
	o := Outcome{Step: st}
	switch st.Op {
	case OpAdd:
		o.Err = m.AddTask(st.ID, st.Priority)
	case OpExecute:
		t, err := m.ExecuteNext()
		if err == nil {
			o.Task = &t
		}
		o.Err = err
	case OpList:
		o.Tasks = m.Pending()
	case OpCancel:
		o.Err = m.CancelTask(st.ID)
	default:
		o.Err = errors.Errorf("unknown op %q", st.Op)
	}
	return o
}

// Demo returns the built-in scenario: three tasks, one executed by priority,
// one cancelled, then the rest drained until nothing is pending.
func Demo() Script {
	return Script{Steps: []Step{
		{Op: OpAdd, ID: "A", Priority: 5},
		{Op: OpAdd, ID: "B", Priority: 10},
		{Op: OpAdd, ID: "C", Priority: 5},
		{Op: OpList},
		{Op: OpExecute},
		{Op: OpCancel, ID: "A"},
		{Op: OpList},
		{Op: OpExecute},
		{Op: OpExecute},
	}}
}
