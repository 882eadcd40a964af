package httpapi

import "net/http"

// NewRouter builds the ServeMux for the four endpoints in §6. Go 1.22's
// method-aware ServeMux patterns are used directly rather than pulling in
// a router library.
func NewRouter(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/info", h.ListWeapons)
	mux.HandleFunc("GET /api/info/{weapon_id}/mods", func(w http.ResponseWriter, r *http.Request) {
		weaponID := r.PathValue("weapon_id")
		if weaponID == "" {
			http.NotFound(w, r)
			return
		}
		h.ListMods(w, r, weaponID)
	})
	mux.HandleFunc("POST /api/optimize", h.Optimize)
	mux.HandleFunc("POST /api/explore", h.Explore)

	return mux
}
