package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func staticTool(name, reply string) Tool {
	return Tool{
		Definition: llms.FunctionDefinition{
			Name:       name,
			Parameters: emptyObjectSchema(),
		},
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return reply, nil
		},
	}
}

func TestRegisterValidation(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(Tool{Definition: llms.FunctionDefinition{Parameters: emptyObjectSchema()}})
	assert.ErrorIs(t, err, ErrInvalidTool)

	err = reg.Register(Tool{Definition: llms.FunctionDefinition{Name: "x", Parameters: emptyObjectSchema()}})
	assert.ErrorIs(t, err, ErrInvalidTool)

	err = reg.Register(Tool{
		Definition: llms.FunctionDefinition{Name: "x"},
		Handler:    func(context.Context, json.RawMessage) (string, error) { return "", nil },
	})
	assert.ErrorIs(t, err, ErrInvalidTool)

	require.NoError(t, reg.Register(staticTool("x", "ok")))
	err = reg.Register(staticTool("x", "dup"))
	assert.ErrorIs(t, err, ErrInvalidTool)
}

func TestDefinitionsOrder(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(staticTool("b", "")))
	require.NoError(t, reg.Register(staticTool("a", "")))
	require.NoError(t, reg.Register(staticTool("c", "")))

	defs := reg.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "b", defs[0].Function.Name)
	assert.Equal(t, "a", defs[1].Function.Name)
	assert.Equal(t, "c", defs[2].Function.Name)
	assert.Equal(t, []string{"b", "a", "c"}, reg.Names())
	for _, d := range defs {
		assert.Equal(t, "function", d.Type)
	}
}

func TestDispatch(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(staticTool("echo", `{"ok":true}`)))
	require.NoError(t, reg.Register(Tool{
		Definition: llms.FunctionDefinition{Name: "broken", Parameters: emptyObjectSchema()},
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return "", errors.New("boom")
		},
	}))

	out, err := reg.Dispatch(context.Background(), "echo", "{}")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	_, err = reg.Dispatch(context.Background(), "missing", "{}")
	assert.ErrorIs(t, err, ErrUnknownTool)

	_, err = reg.Dispatch(context.Background(), "broken", "{}")
	assert.ErrorIs(t, err, ErrToolFailed)
	assert.Contains(t, err.Error(), "boom")
}
