package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP handler group (listings, policy,
// assistant, vision, health) so the bootstrap can mount them uniformly.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
