package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ActorHeader carries the id of the user on whose behalf the channel calls.
const ActorHeader = "X-User-Id"

type actorKey struct{}

// Actor copies the acting user id from the request header into the
// request context. Authorization itself happens in the services.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(ActorHeader)); id != "" {
			r = r.WithContext(WithActor(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func WithActor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorKey{}, id)
}

func ActorFrom(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}
