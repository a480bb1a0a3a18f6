package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	boarddomain "github.com/taskboard/backend/internal/board/domain"
	"github.com/taskboard/backend/internal/board/service"
	commonhttp "github.com/taskboard/backend/internal/common/http"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/session"
)

type boardRequest struct {
	Name string `json:"name" validate:"max=120"`
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,max=32"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	boards   *service.BoardService
	validate *validator.Validate
	log      *logger.Logger
}

// NewHandler builds the board/task routes. The session middleware is expected
// in front of every route here.
func NewHandler(boards *service.BoardService, log *logger.Logger) http.Handler {
	h := &Handler{
		boards:   boards,
		validate: validator.New(),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/boards", h.boardCollection)
	mux.HandleFunc("/api/boards/", h.boardResource)
	mux.HandleFunc("/api/tasks/", h.taskResource)
	return mux
}

func (h *Handler) boardCollection(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		boards, err := h.boards.ListBoards(r.Context(), identity)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, boards)

	case http.MethodPost:
		req, ok := h.decodeBoardRequest(w, r)
		if !ok {
			return
		}
		board, err := h.boards.CreateBoard(r.Context(), identity, req.Name)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusCreated, board)

	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) boardResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	boardID, rest, ok := commonhttp.ExtractResourceID(r.URL.Path, "/api/boards/")
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
		return
	}

	if rest == "/tasks" {
		h.boardTasks(w, r, identity, boardID)
		return
	}
	if rest != "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
		return
	}

	switch r.Method {
	case http.MethodPut:
		req, ok := h.decodeBoardRequest(w, r)
		if !ok {
			return
		}
		board, err := h.boards.RenameBoard(r.Context(), identity, boardID, req.Name)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, board)

	case http.MethodDelete:
		if err := h.boards.DeleteBoard(r.Context(), identity, boardID); err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "board deleted"})

	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) boardTasks(w http.ResponseWriter, r *http.Request, identity session.Identity, boardID string) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := h.boards.ListTasks(r.Context(), identity, boardID)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, tasks)

	case http.MethodPost:
		var req createTaskRequest
		if err := commonhttp.DecodeJSON(r, &req); err != nil {
			h.log.Warnf("create task failed: invalid json: %v", err)
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, err.Error(), nil, "")
			return
		}
		task, err := h.boards.CreateTask(r.Context(), identity, boardID, req.Title, req.Description)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusCreated, task)

	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) taskResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, rest, ok := commonhttp.ExtractResourceID(r.URL.Path, "/api/tasks/")
	if !ok || rest != "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req updateTaskRequest
		if err := commonhttp.DecodeJSON(r, &req); err != nil {
			h.log.Warnf("update task failed: invalid json: %v", err)
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, err.Error(), nil, "")
			return
		}
		task, err := h.boards.UpdateTask(r.Context(), identity, taskID, boarddomain.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		})
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, task)

	case http.MethodDelete:
		if err := h.boards.DeleteTask(r.Context(), identity, taskID); err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "task deleted"})

	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) decodeBoardRequest(w http.ResponseWriter, r *http.Request) (boardRequest, bool) {
	var req boardRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("board request failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return boardRequest{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, err.Error(), nil, "")
		return boardRequest{}, false
	}
	return req, true
}
