package calculator

import "github.com/go-chi/chi/v5"

// LegacyPath is where the browser page posts its calculations.
const LegacyPath = "/Home/Calculate"

// RegisterRoutes mounts the calculation endpoints: the token-based endpoint
// at LegacyPath and /calculator/calculate, and one endpoint per operation
// name under /calculator.
func RegisterRoutes(r chi.Router) {
	r.Post(LegacyPath, CalculateHandler)

	r.Route("/calculator", func(r chi.Router) {
		r.Post("/calculate", CalculateHandler)
		r.Post("/{operation}", CalculateByName)
	})
}
