package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/domain"
	"github.com/GoArmGo/Playlister/internal/usecase"
)

// PlaylistHandler — обработчик HTTP-запросов для работы с плейлистами.
// Все маршруты защищены RequireSession.
type PlaylistHandler struct {
	playlists usecase.PlaylistUseCase
	logger    *slog.Logger
}

// NewPlaylistHandler создаёт новый экземпляр PlaylistHandler.
func NewPlaylistHandler(uc usecase.PlaylistUseCase, logger *slog.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		playlists: uc,
		logger:    logger,
	}
}

type songRequest struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Year      int    `json:"year" validate:"gte=0"`
	YouTubeID string `json:"youTubeId"`
}

type createPlaylistRequest struct {
	Name       string        `json:"name" validate:"required"`
	OwnerEmail string        `json:"ownerEmail" validate:"omitempty,email"`
	Songs      []songRequest `json:"songs" validate:"dive"`
}

type updatePlaylistRequest struct {
	Playlist struct {
		Name  string        `json:"name" validate:"required"`
		Songs []songRequest `json:"songs" validate:"dive"`
	} `json:"playlist"`
}

func toSongs(in []songRequest) []domain.Song {
	songs := make([]domain.Song, 0, len(in))
	for _, s := range in {
		songs = append(songs, domain.Song{
			Title:           s.Title,
			Artist:          s.Artist,
			Year:            s.Year,
			ExternalMediaID: s.YouTubeID,
		})
	}
	return songs
}

// CreatePlaylist — POST /store/playlist
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	var req createPlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	playlist, err := h.playlists.CreatePlaylist(r.Context(), callerID, usecase.CreatePlaylistInput{
		Name:       req.Name,
		OwnerEmail: req.OwnerEmail,
		Songs:      toSongs(req.Songs),
	})
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]*domain.Playlist{"playlist": playlist}, h.logger)
}

// GetPlaylist — GET /store/playlist/{id}
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	id := domain.ID(chi.URLParam(r, "id"))

	playlist, err := h.playlists.GetPlaylist(r.Context(), callerID, id)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Success  bool             `json:"success"`
		Playlist *domain.Playlist `json:"playlist"`
	}{true, playlist}, h.logger)
}

// UpdatePlaylist — PUT /store/playlist/{id}
func (h *PlaylistHandler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	id := domain.ID(chi.URLParam(r, "id"))

	var req updatePlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	playlist, err := h.playlists.UpdatePlaylist(r.Context(), callerID, id, domain.PlaylistUpdate{
		Name:  req.Playlist.Name,
		Songs: toSongs(req.Playlist.Songs),
	})
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Success bool      `json:"success"`
		ID      domain.ID `json:"id"`
		Message string    `json:"message"`
	}{true, playlist.ID, "Playlist updated!"}, h.logger)
}

// DeletePlaylist — DELETE /store/playlist/{id}
func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	id := domain.ID(chi.URLParam(r, "id"))

	if _, err := h.playlists.DeletePlaylist(r.Context(), callerID, id); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, struct{}{}, h.logger)
}

// GetPlaylistPairs — GET /store/playlistpairs
func (h *PlaylistHandler) GetPlaylistPairs(w http.ResponseWriter, r *http.Request) {
	pairs, ok := h.pairs(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, struct {
		Success     bool                  `json:"success"`
		IDNamePairs []domain.PlaylistPair `json:"idNamePairs"`
	}{true, pairs}, h.logger)
}

// GetPlaylists — GET /store/playlists; та же проекция под ключом data
func (h *PlaylistHandler) GetPlaylists(w http.ResponseWriter, r *http.Request) {
	pairs, ok := h.pairs(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, struct {
		Success bool                  `json:"success"`
		Data    []domain.PlaylistPair `json:"data"`
	}{true, pairs}, h.logger)
}

func (h *PlaylistHandler) pairs(w http.ResponseWriter, r *http.Request) ([]domain.PlaylistPair, bool) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	pairs, err := h.playlists.GetPlaylistPairs(r.Context(), callerID)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return nil, false
	}
	return pairs, true
}
