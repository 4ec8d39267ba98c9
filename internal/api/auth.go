package api

import (
	"net/http"

	"tasktracker/m/internal/service"
)

// Auth handlers. Failure bodies are always {success:false, message} so the
// client sees one shape regardless of where the failure happened.

type registerRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, service.Result{Message: err.Error()})
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, service.Result{Message: "email, username and password are required"})
		return
	}

	res := h.auth.Register(req.Email, req.Username, req.Password, req.ConfirmPassword)
	if !res.Success {
		respondJSON(w, http.StatusBadRequest, res)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, service.Result{Message: err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, service.Result{Message: "email and password are required"})
		return
	}

	res := h.auth.Login(req.Email, req.Password)
	if !res.Success {
		respondJSON(w, http.StatusUnauthorized, res)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, service.Result{Message: err.Error()})
		return
	}
	if req.NewPassword == "" {
		respondJSON(w, http.StatusBadRequest, service.Result{Message: "new_password is required"})
		return
	}

	claims := claimsFromContext(r)
	res := h.auth.ResetPassword(claims.UserID, req.NewPassword)
	if !res.Success {
		respondJSON(w, http.StatusBadRequest, res)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
