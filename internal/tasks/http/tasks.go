package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/service"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/validation"
	"github.com/aussiebroadwan/tasktrack/pkg/httpx"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	TaskService *service.TaskService
}

// TaskRequest documents the task body. Every member is optional on update.
type TaskRequest struct {
	Title       string  `json:"title" example:"Buy milk"`
	Description *string `json:"description" example:"Two litres"`
	Status      string  `json:"status" enums:"todo,in-progress,done" example:"todo"`
}

// callerID returns the authenticated user. The route group guarantees the
// identity is present.
func callerID(r *http.Request) (int64, error) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		return 0, domain.Unauthorized(httpx.MsgNoToken)
	}
	return id.UserID, nil
}

// taskID parses the {id} path segment. Anything that is not a positive
// integer cannot name a task.
func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NotFound(domain.MsgTaskNotFound)
	}
	return id, nil
}

// HandleCreate godoc
//
//	@Summary	Create a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		TaskRequest	true	"Task; status defaults to todo"
//	@Success	201		{object}	domain.Task
//	@Failure	400		{object}	httpx.Message
//	@Failure	401		{object}	httpx.Message
//	@Router		/tasks [post]
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) error {
	userID, err := callerID(r)
	if err != nil {
		return err
	}
	b, err := decodeBody(w, r)
	if err != nil {
		return err
	}

	title, err := validation.RequiredTitle(b["title"])
	if err != nil {
		return err
	}
	status, err := validation.OptionalStatus(b["status"])
	if err != nil {
		return err
	}
	desc, err := validation.OptionalDescription(b["description"])
	if err != nil {
		return err
	}

	t, err := h.TaskService.Create(r.Context(), userID, service.NewTask{
		Title:       title,
		Description: desc,
		Status:      status,
	})
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, http.StatusCreated, t)
	return nil
}

// HandleList godoc
//
//	@Summary	List the caller's tasks
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Param		status	query		string	false	"Filter by status"	Enums(todo, in-progress, done)
//	@Param		sort	query		string	false	"Sort key"			Enums(createdAt, updatedAt)
//	@Param		order	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Param		page	query		int		false	"Page, from 1"		default(1)
//	@Param		limit	query		int		false	"Page size"			default(10)
//	@Success	200		{object}	domain.TaskPage
//	@Failure	400		{object}	httpx.Message
//	@Failure	401		{object}	httpx.Message
//	@Router		/tasks [get]
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	userID, err := callerID(r)
	if err != nil {
		return err
	}

	q, err := service.ParseListQuery(userID, r.URL.Query())
	if err != nil {
		return err
	}

	page, err := h.TaskService.List(r.Context(), q)
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, http.StatusOK, page)
	return nil
}

// HandleGet godoc
//
//	@Summary	Get a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Task ID"
//	@Success	200	{object}	domain.Task
//	@Failure	401	{object}	httpx.Message
//	@Failure	403	{object}	httpx.Message
//	@Failure	404	{object}	httpx.Message
//	@Router		/tasks/{id} [get]
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) error {
	userID, err := callerID(r)
	if err != nil {
		return err
	}
	id, err := taskID(r)
	if err != nil {
		return err
	}

	t, err := h.TaskService.Get(r.Context(), id, userID)
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, http.StatusOK, t)
	return nil
}

// HandleUpdate godoc
//
//	@Summary		Update a task
//	@Description	Partial update; absent members keep their value
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Task ID"
//	@Param			body	body		TaskRequest	true	"Fields to change"
//	@Success		200		{object}	domain.Task
//	@Failure		400		{object}	httpx.Message
//	@Failure		401		{object}	httpx.Message
//	@Failure		403		{object}	httpx.Message
//	@Failure		404		{object}	httpx.Message
//	@Router			/tasks/{id} [put]
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := callerID(r)
	if err != nil {
		return err
	}
	id, err := taskID(r)
	if err != nil {
		return err
	}

	// Ownership is settled before the body is looked at, so a stranger's
	// task answers 403 even when the payload is invalid.
	owned, err := h.TaskService.ResolveOwnedTask(ctx, id, userID)
	if err != nil {
		return err
	}

	b, err := decodeBody(w, r)
	if err != nil {
		return err
	}

	var p domain.TaskPatch
	if p.Title, err = validation.OptionalTitle(b["title"]); err != nil {
		return err
	}
	if p.Description, err = validation.OptionalDescription(b["description"]); err != nil {
		return err
	}
	if p.Status, err = validation.OptionalStatus(b["status"]); err != nil {
		return err
	}

	t, err := h.TaskService.UpdateOwned(ctx, owned, p)
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, http.StatusOK, t)
	return nil
}

// HandleDelete godoc
//
//	@Summary	Delete a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Task ID"
//	@Success	200	{object}	httpx.Message
//	@Failure	401	{object}	httpx.Message
//	@Failure	403	{object}	httpx.Message
//	@Failure	404	{object}	httpx.Message
//	@Router		/tasks/{id} [delete]
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) error {
	userID, err := callerID(r)
	if err != nil {
		return err
	}
	id, err := taskID(r)
	if err != nil {
		return err
	}

	if err := h.TaskService.Delete(r.Context(), id, userID); err != nil {
		return err
	}

	httpx.WriteMessage(w, http.StatusOK, domain.MsgTaskDeleted)
	return nil
}
