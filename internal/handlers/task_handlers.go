package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"todoList/internal/handlers/dto"
	"todoList/internal/logger"
	"todoList/internal/middleware"
	"todoList/internal/models/task"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// Create обрабатывает POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	dueDate, ok := parseDueDate(w, r, request.DueDate)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задач")
	created, err := h.service.Create(r.Context(), userID, request.Title, request.Description, dueDate, task.Status(request.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respondWithJSON(w, http.StatusCreated, "Task created successfully.", dto.FromTask(created))
}

// List обрабатывает GET /tasks?status=<all|статус>
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = task.StatusAll
	}

	logger.Info("HTTP: Вызов сервиса для получения задач")
	tasks, err := h.service.List(r.Context(), userID, statusFilter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "tasks fetched successfully", dto.FromTaskList(tasks))
}

// Retrieve обрабатывает GET /tasks/retrieve?task_id=<id>
func (h *TaskHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := taskIDFromQuery(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения задачи")
	found, err := h.service.GetByID(r.Context(), userID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", found.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "Task found successfully.", dto.FromTask(found))
}

// Update обрабатывает PUT /tasks/update?task_id=<id>
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := taskIDFromQuery(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	dueDate, ok := parseDueDate(w, r, request.DueDate)
	if !ok {
		return
	}

	logger.Info("HTTP: запрос к сервису обновления данных")
	updated, err := h.service.Update(r.Context(), userID, taskID, request.Title, request.Description, dueDate, task.Status(request.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "Task updated successfully.", dto.FromTask(updated))
}

// Destroy обрабатывает DELETE /tasks/destroy?task_id=<id>.
// Задача помечается удалённой, повторное удаление вернёт 404.
func (h *TaskHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	taskID, ok := taskIDFromQuery(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления задачи")
	if err := h.service.Delete(r.Context(), userID, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", taskID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondWithJSON(w, http.StatusOK, "Task deleted successfully.", map[string]any{})
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.service.HealthCheck(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	respondWithJSON(w, http.StatusOK, "healthy", nil)
}

func ownerFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		logger.Warn("HTTP: Запрос без аутентификации",
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusUnauthorized, "missing token")
		return uuid.Nil, false
	}
	return userID, true
}

func taskIDFromQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := r.URL.Query().Get("task_id")
	taskID, err := uuid.Parse(idParam)
	if err != nil || taskID == uuid.Nil {
		logger.Warn("HTTP: Не удалось получить task_id",
			zap.String("task_id", idParam),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "не удалось получить task_id")
		return uuid.Nil, false
	}
	return taskID, true
}

// дедлайн в запросах передаётся строкой вида 2006-01-02
func parseDueDate(w http.ResponseWriter, r *http.Request, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}

	parsed, err := time.Parse(dto.DueDateLayout, value)
	if err != nil {
		logger.Warn("HTTP: Неверный формат дедлайна",
			zap.String("due_date", value),
			zap.String("client_ip", r.RemoteAddr))
		respondWithError(w, http.StatusBadRequest, "Invalid Due Date")
		return nil, false
	}
	return &parsed, true
}
