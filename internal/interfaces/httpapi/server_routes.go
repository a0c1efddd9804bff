package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerPlayerRoutes(mux, handler, verifier)
	registerTeamRoutes(mux, handler, verifier)
	registerMatchRoutes(mux, handler, verifier)
	registerHistoryRoutes(mux, handler, verifier)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))
	mux.Handle("POST /v1/players/reset", RequireAuth(verifier, http.HandlerFunc(handler.ResetPlayers)))
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/generate", RequireAuth(verifier, http.HandlerFunc(handler.GenerateTeams)))
	mux.Handle("GET /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListTeams)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamDetail)))
	mux.Handle("GET /v1/teams/{teamID}/history", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamHistory)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ScheduleMatch)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("POST /v1/matches/{matchID}/result", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatchResult)))
}

func registerHistoryRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/history", RequireAuth(verifier, http.HandlerFunc(handler.GetOwnerHistory)))
	mux.Handle("GET /v1/summary", RequireAuth(verifier, http.HandlerFunc(handler.GetLeagueSummary)))
}
