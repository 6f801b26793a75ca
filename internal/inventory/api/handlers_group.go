package api

import (
	"net/http"

	"github.com/peervault/peervault/internal/inventory/peer"
	pkgapi "github.com/peervault/peervault/pkg/api"
)

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toAPIGroups(groups))
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req pkgapi.CreateGroupRequest
	if err := ParseJSONRequest(r, &req); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	g, err := peer.NewGroup(req.Name, req.Color)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	if err := s.groups.Create(r.Context(), g); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toAPIGroup(g))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), r.PathValue("groupID")); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}
