package script

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrivq/internal/sched"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - op: add
    id: build
    priority: 5
  - op: ADD
    priority: 1
  - op: list
  - op: execute
  - op: cancel
    id: build
`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 5)

	assert.Equal(t, Step{Op: OpAdd, ID: "build", Priority: 5}, s.Steps[0])
	assert.Equal(t, OpAdd, s.Steps[1].Op)
	_, err = uuid.Parse(s.Steps[1].ID)
	assert.NoError(t, err, "add without id gets a generated one")
	assert.Equal(t, Step{Op: OpCancel, ID: "build"}, s.Steps[4])
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no steps", body: "steps: []\n", want: "'steps' must not be empty"},
		{name: "unknown op", body: "steps:\n  - op: run\n", want: "'steps[0].op' must be one of [add execute list cancel]"},
		{name: "missing op", body: "steps:\n  - id: x\n", want: "'steps[0].op' is required"},
		{name: "cancel without id", body: "steps:\n  - op: list\n  - op: cancel\n", want: "'steps[1].id' is required"},
		{name: "bad yaml", body: "steps: {\n", want: "parse script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunDemo(t *testing.T) {
	m := sched.NewManager()
	out := Run(m, Demo())
	require.Len(t, out, 9)

	for _, o := range out[:3] {
		assert.NoError(t, o.Err, o.Step.String())
	}

	listed := func(ts []sched.Task) []string {
		var ids []string
		for _, x := range ts {
			ids = append(ids, x.ID)
		}
		return ids
	}
	assert.Equal(t, []string{"A", "B", "C"}, listed(out[3].Tasks))

	require.NotNil(t, out[4].Task)
	assert.Equal(t, "B", out[4].Task.ID)

	assert.NoError(t, out[5].Err)
	assert.Equal(t, []string{"C"}, listed(out[6].Tasks))

	require.NotNil(t, out[7].Task)
	assert.Equal(t, "C", out[7].Task.ID)

	assert.Nil(t, out[8].Task)
	assert.ErrorIs(t, out[8].Err, sched.ErrNoPendingTasks)
	assert.Equal(t, 0, m.Len())
}

func TestRunKeepsGoingAfterErrors(t *testing.T) {
	m := sched.NewManager()
	out := Run(m, Script{Steps: []Step{
		{Op: OpAdd, ID: "A", Priority: 1},
		{Op: OpAdd, ID: "A", Priority: 2},
		{Op: OpCancel, ID: "B"},
		{Op: OpExecute},
	}})

	require.Len(t, out, 4)
	assert.NoError(t, out[0].Err)
	assert.ErrorIs(t, out[1].Err, sched.ErrDuplicateID)
	assert.ErrorIs(t, out[2].Err, sched.ErrNotFound)
	require.NoError(t, out[3].Err)
	assert.Equal(t, 1, out[3].Task.Priority)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "add A (priority 5)", Step{Op: OpAdd, ID: "A", Priority: 5}.String())
	assert.Equal(t, "cancel A", Step{Op: OpCancel, ID: "A"}.String())
	assert.Equal(t, "execute", Step{Op: OpExecute}.String())
	assert.Equal(t, "list", Step{Op: OpList}.String())
}
