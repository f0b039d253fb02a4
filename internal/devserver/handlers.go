package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/query"
	"github.com/nikbrunner/mev/internal/storage"
)

// cursorKey is the pagination parameter; it is not part of the search
// query.
const cursorKey = "id"

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.search(w, r, false)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	s.search(w, r, true)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, filter bool) {
	q := query.Parse(r.URL.RawQuery)

	after, err := strconv.ParseInt(q.Get(cursorKey).Scalar(), 10, 64)
	if err != nil && q.Has(cursorKey) {
		s.writeError(w, http.StatusBadRequest, "invalid cursor")
		return
	}
	q.Delete(cursorKey)

	sq := storage.SearchQuery{
		Keyword: q.Keyword(),
		After:   after,
		Limit:   s.cfg.PageSize,
	}
	if filter {
		sq.Facets = make(map[string][]string)
		for _, key := range q.Keys() {
			if key == query.KeywordKey {
				continue
			}
			if _, ok := model.FacetByKey(key); !ok {
				s.writeError(w, http.StatusBadRequest, "unknown facet "+key)
				return
			}
			sq.Facets[key] = q.Get(key).Values()
		}
	}

	items, err := s.store.Search(r.Context(), sq)
	if err != nil {
		s.fail(w, err)
		return
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := s.store.Authenticate(r.Context(), req.UserName, req.Password); err != nil {
		s.fail(w, err)
		return
	}
	token, err := s.store.CreateSession(r.Context(), req.UserName)
	if err != nil {
		s.fail(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
}

// email decodes and checks the body of the email-only endpoints.
func (s *Server) email(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req model.EmailRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body")
		return "", false
	}
	email := strings.TrimSpace(req.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid email")
		return "", false
	}
	return email, true
}

func (s *Server) handleSendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := s.email(w, r)
	if !ok {
		return
	}

	token, err := s.store.CreateVerification(r.Context(), email)
	if err != nil {
		s.fail(w, err)
		return
	}
	// no mail is sent; the link goes to the log
	s.log.Info("verification link", "email", email, "token", token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFindID(w http.ResponseWriter, r *http.Request) {
	email, ok := s.email(w, r)
	if !ok {
		return
	}

	username, err := s.store.UsernameByEmail(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, username)
}

func (s *Server) handleFindPassword(w http.ResponseWriter, r *http.Request) {
	email, ok := s.email(w, r)
	if !ok {
		return
	}

	temp, err := s.store.ResetPassword(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("temporary password issued", "email", email, "password", temp)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFindRestaurant(w http.ResponseWriter, r *http.Request) {
	var req model.Restaurant
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.store.UpsertRestaurant(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDishes(w http.ResponseWriter, r *http.Request) {
	menus, err := s.store.Menus(r.Context(), chi.URLParam(r, "restaurantId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, menus)
}

func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart body")
		return false
	}
	return true
}

func (s *Server) handleAddMenu(w http.ResponseWriter, r *http.Request) {
	if !s.parseMultipart(w, r) {
		return
	}

	restaurantID, _ := formValue(r, "restaurantId")
	name, _ := formValue(r, "menuName")
	if strings.TrimSpace(restaurantID) == "" || strings.TrimSpace(name) == "" {
		s.writeError(w, http.StatusBadRequest, "restaurantId and menuName are required")
		return
	}
	img, err := formImage(r, "file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := s.store.AddMenu(r.Context(), restaurantID, strings.TrimSpace(name), img)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if !s.parseMultipart(w, r) {
		return
	}

	dto, err := formValue(r, "resultDto")
	if err != nil || dto == "" {
		s.writeError(w, http.StatusBadRequest, "resultDto is required")
		return
	}
	var ev model.Evaluation
	if err := decodeString(dto, &ev); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid resultDto")
		return
	}
	if err := ev.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, err := formImage(r, "file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.AddEvaluation(r.Context(), chi.URLParam(r, "menuId"), ev, img); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.store.MenuImage(r.Context(), chi.URLParam(r, "menuId"))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", img.MIME)
	_, _ = w.Write(img.Data)
}
