package middleware

import (
	"net/http"

	"github.com/zatekoja/careplannavigator/internal/application/loaders"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
)

// LoadersMiddleware gives each request its own dataloaders so lookups
// within one request are batched and never shared across requests
func LoadersMiddleware(stepRepo repositories.CareStepRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := loaders.WithLoaders(r.Context(), loaders.NewLoaders(stepRepo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
