package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gotera/internal/graphql"
	"gotera/internal/notify"
	"gotera/internal/repository"
	"gotera/internal/resource"
	"gotera/internal/validation"
)

// base holds what every page handler shares.
type base struct {
	render    *Renderer
	validator *validation.Validator
	pageSize  int
}

func newBase(render *Renderer, validator *validation.Validator, pageSize int) base {
	return base{render: render, validator: validator, pageSize: pageSize}
}

// notifier queues toasts on the request's session.
func (b *base) notifier(r *http.Request) notify.Notifier {
	store := GetSessionFromContext(r.Context())
	if store == nil {
		return notify.Discard
	}
	return notify.Flash{Store: store}
}

// mutation builds a write that toasts through the session and keeps field
// validation errors for the form.
func mutation[V, T any](b *base, r *http.Request, send resource.Sender[V, T], success string, opts ...resource.MutationOption) *resource.Mutation[V, T] {
	opts = append([]resource.MutationOption{
		resource.WithNotifier(b.notifier(r)),
		resource.WithSuccessMessage(success),
		resource.WithSilentErrors(isValidationError),
	}, opts...)
	return resource.NewMutation(send, opts...)
}

// inline silences the notice for errs, which the page shows next to the form.
func inline(errs ...error) resource.MutationOption {
	return resource.WithSilentErrors(func(err error) bool {
		for _, target := range errs {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	})
}

// fetch runs a one-off query and logs its failure.
func fetch[T any](ctx context.Context, what string, fn resource.Fetcher[T]) resource.State[T] {
	st := resource.NewQuery(fn).Fetch(ctx)
	if st.Err != nil {
		slog.WarnContext(ctx, "Failed to load "+what, "error", st.Err, "kind", graphql.Kind(st.Err), "request_id", GetRequestID(ctx))
	}
	return st
}

func isValidationError(err error) bool {
	_, ok := validation.AsErrors(err)
	return ok
}

// formError splits err into field messages and a banner message.
func formError(err error) (validation.Errors, string) {
	if errs, ok := validation.AsErrors(err); ok {
		return errs, ""
	}
	return nil, graphql.Message(err)
}

// errorMessage is the text shown in a list page's error panel.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return graphql.Message(err)
}

// confirmed reports whether a delete form was confirmed.
func confirmed(r *http.Request) bool {
	return r.FormValue(confirmField) == confirmYes
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// notFound sends the caller to the not-found page.
func notFound(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/auth/404")
}

// one adapts a call returning a pointer into a Fetcher of the value. A nil
// result reads as not found.
func one[T any](fn func(ctx context.Context) (*T, error)) resource.Fetcher[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		v, err := fn(ctx)
		if err != nil {
			return zero, err
		}
		if v == nil {
			return zero, repository.ErrNotFound
		}
		return *v, nil
	}
}
