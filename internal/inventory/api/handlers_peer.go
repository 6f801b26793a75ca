package api

import (
	"net/http"

	"github.com/peervault/peervault/internal/inventory/peer"
	apperrors "github.com/peervault/peervault/internal/shared/errors"
	pkgapi "github.com/peervault/peervault/pkg/api"
)

func (s *Server) handleListPeers(w http.ResponseWriter, r *http.Request) {
	peers, err := s.peers.List(r.Context())
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toAPIPeers(peers))
}

func (s *Server) handleGetPeer(w http.ResponseWriter, r *http.Request) {
	p, err := s.peers.Get(r.Context(), r.PathValue("peerID"))
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, toAPIPeer(p, false))
}

func (s *Server) handleCreatePeer(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())

	var req pkgapi.CreatePeerRequest
	if err := ParseJSONRequest(r, &req); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	var errs ValidationErrors
	if err := peer.ValidateName(req.Name); err != nil {
		errs = append(errs, ValidationError{Field: "name", Message: err.Error()})
	}
	if req.PublicKey != nil {
		if err := peer.ValidatePublicKey(*req.PublicKey); err != nil {
			errs = append(errs, ValidationError{Field: "public_key", Message: err.Error()})
		}
	}
	if len(errs) > 0 {
		WriteErrorResponse(w, r, errs.ToDomainError())
		return
	}

	var publicKey string
	var privateKey *string
	generated := false
	if req.PublicKey != nil {
		publicKey = *req.PublicKey
	} else {
		pair, err := s.keys.GenerateKeyPair()
		if err != nil {
			WriteErrorResponse(w, r, apperrors.NewBaseError("peer", apperrors.ErrCodeKeyGen, "failed to generate key pair", true, err))
			return
		}
		publicKey = pair.PublicKey
		pk := pair.PrivateKey
		privateKey = &pk
		generated = true
	}

	p, err := peer.NewPeer(req.Name, publicKey, privateKey)
	if err != nil {
		WriteErrorResponse(w, r, err)
		return
	}
	if req.AllowedIPs != nil {
		p.AllowedIPs = *req.AllowedIPs
	}
	if req.DNS != nil {
		p.DNS = *req.DNS
	}
	if req.PersistentKeepalive != nil {
		p.PersistentKeepalive = *req.PersistentKeepalive
	}
	p.ApplyDefaults()

	if req.GroupID != nil {
		if _, err := s.groups.Get(r.Context(), *req.GroupID); err != nil {
			WriteErrorResponse(w, r, err)
			return
		}
		p.GroupID = req.GroupID
	}

	if err := s.peers.Create(r.Context(), p); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	if err := s.bus.PublishPeerCreated(p.ID, p.Name); err != nil {
		logger.Warn("failed to publish peer created event", "error", err)
	}

	// The private key is only ever returned here, and only when the
	// server generated it.
	WriteSuccess(w, http.StatusCreated, toAPIPeer(p, generated))
}

func (s *Server) handleDeletePeer(w http.ResponseWriter, r *http.Request) {
	logger := GetLogger(r.Context())
	peerID := r.PathValue("peerID")

	if err := s.peers.Delete(r.Context(), peerID); err != nil {
		WriteErrorResponse(w, r, err)
		return
	}

	if err := s.bus.PublishPeerDeleted(peerID); err != nil {
		logger.Warn("failed to publish peer deleted event", "error", err)
	}

	WriteJSON(w, http.StatusNoContent, nil)
}
