package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/research-queue/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{ calls int }

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	return "pong:" + request.(*pingQuery).Value, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))

	response, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", response)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RegistrationErrors(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))

	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}), "duplicate")
	assert.Error(t, m.Register(nil, &pingHandler{}))
	assert.Error(t, mediator.RegisterHandler[*pingQuery](mediator.NewMediator(), nil))
}

func TestMediator_SendErrors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")
}

func TestMediator_FirstMiddlewareIsOutermost(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))

	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			response, err := next(ctx, request)
			order = append(order, name+":after")
			return response, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))

	denied := errors.New("denied")
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.ErrorIs(t, err, denied)
	assert.Zero(t, handler.calls)
}
