package handlers

import (
	"CurtainSamples/internal/config"
	"CurtainSamples/internal/middleware"
	"CurtainSamples/internal/model"
	"CurtainSamples/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler вход администратора и информация о текущем пользователе.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Login, IsAdmin: u.IsAdmin}
}

// Login выдаёт токен на 24 часа. Токен отдаётся в теле и дублируется в cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Infow("Login: rejected", "username", req.Username)
		writeServiceError(w, h.Logger, "Login", err)
		return
	}

	token, err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Login: failed to issue token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Logger.Infow("Login: success", "user_id", user.ID)
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserDTO(user)})
}

// Me текущий пользователь по токену.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.UserService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
