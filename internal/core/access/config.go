package access

// Config is the declarative data behind a Policy.
type Config struct {
	Public         PathSet
	AdminPrefixes  []string
	ClientPrefixes []string
	LoginPath      string
	HomePath       string
}

// GameDetailSlugs are the game pages reachable without signing in.
var GameDetailSlugs = []string{
	"resident_evil", "outlast", "alien", "silentHill2", "horizon",
	"eldenring", "mariokart", "projectcars3", "spiderman", "halo3",
}

// DefaultConfig returns the store's route table.
func DefaultConfig() Config {
	exact := []string{
		"/",
		"/login/",
		"/registro/",
		"/actividades/",
		"/ofertas/",
		"/terror/",
		"/accion/",
		"/carreras/",
		"/mundoabierto/",
		"/suspenso/",
		"/password-reset/",
		"/password-reset/done/",
		"/password-reset/complete/",
	}
	for _, slug := range GameDetailSlugs {
		exact = append(exact, "/"+slug+"/")
	}

	return Config{
		Public: PathSet{
			Exact:         exact,
			Prefixes:      []string{"/static/", "/media/", "/health", "/metrics", "/swagger/"},
			Parameterized: []string{"/password-reset/confirm/"},
		},
		AdminPrefixes: []string{
			"/administracion/",
			"/admin/juegos/",
			"/juegos/",
			"/juegos/crear/",
			"/juegos/editar/",
			"/juegos/eliminar/",
		},
		ClientPrefixes: []string{
			"/carrito/",
			"/reservas/lista/",
			"/reservas/crear/",
			"/reservas/cancelar/",
		},
		LoginPath: "/login/",
		HomePath:  "/",
	}
}
