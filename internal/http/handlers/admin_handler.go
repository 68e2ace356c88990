package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/markrenzo/portfolio-backend/internal/repository"
	"github.com/markrenzo/portfolio-backend/internal/service"
	"github.com/markrenzo/portfolio-backend/internal/storage"
)

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AdminHandler управляет контентом через белый список таблиц.
type AdminHandler struct {
	auth    *service.AdminAuthService
	repo    *repository.AdminRepository
	storage *storage.MediaStorage
}

// NewAdminHandler создаёт новый хэндлер.
func NewAdminHandler(auth *service.AdminAuthService, repo *repository.AdminRepository, mediaStorage *storage.MediaStorage) *AdminHandler {
	return &AdminHandler{auth: auth, repo: repo, storage: mediaStorage}
}

type adminLoginRequest struct {
	Key string `json:"key"`
}

// Login POST /api/admin/login
// Обменивает админский ключ на JWT с ограниченным сроком жизни.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле key обязательно"})
		return
	}

	token, expiresAt, err := h.auth.Login(req.Key)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "неверный админский ключ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token.Token,
		"expires_at": expiresAt,
	})
}

// ListTables GET /api/admin/tables
func (h *AdminHandler) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": repository.AllowedTables()})
}

// ListRows GET /api/admin/:table
func (h *AdminHandler) ListRows(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context(), c.Param("table"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// GetRow GET /api/admin/:table/:id
func (h *AdminHandler) GetRow(c *gin.Context) {
	id, ok := parseRowID(c)
	if !ok {
		return
	}

	row, err := h.repo.Get(c.Request.Context(), c.Param("table"), id)
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// CreateRow POST /api/admin/:table
// При наличии identifier выполняет upsert по нему.
func (h *AdminHandler) CreateRow(c *gin.Context) {
	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидное тело запроса"})
		return
	}

	id, err := h.repo.Insert(c.Request.Context(), c.Param("table"), values)
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateRow PUT /api/admin/:table/:id
func (h *AdminHandler) UpdateRow(c *gin.Context) {
	id, ok := parseRowID(c)
	if !ok {
		return
	}

	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидное тело запроса"})
		return
	}

	if err := h.repo.Update(c.Request.Context(), c.Param("table"), id, values); err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteRow DELETE /api/admin/:table/:id
func (h *AdminHandler) DeleteRow(c *gin.Context) {
	id, ok := parseRowID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), c.Param("table"), id); err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Upload POST /api/admin/upload
// Принимает изображение, проверяет магические байты и сохраняет в хранилище.
func (h *AdminHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле file обязательно"})
		return
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(extensionList(), ", ")),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось открыть файл"})
		return
	}
	defer src.Close()

	// Читаем первые 512 байт для проверки магических байтов
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось определить тип файла. Разрешены только изображения"})
		return
	}

	if !allowedMimeTypes[kind.MIME.Value] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый тип файла (%s)", kind.MIME.Value),
		})
		return
	}

	// Расширение должно соответствовать реальному типу файла
	expectedExt := "." + kind.Extension
	if ext != expectedExt && !(ext == ".jpg" && expectedExt == ".jpeg") && !(ext == ".jpeg" && expectedExt == ".jpg") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expectedExt),
		})
		return
	}

	// Возвращаемся к началу файла перед сохранением
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	fileName, size, err := h.storage.Save(c.Request.Context(), file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сохранить файл"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":  "/media/" + fileName,
		"size": size,
	})
}

// extensionList возвращает отсортированный список разрешённых расширений.
func extensionList() []string {
	list := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}

// writeRepoError транслирует ошибки репозитория в HTTP статусы.
func (h *AdminHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTableNotAllowed):
		c.JSON(http.StatusNotFound, gin.H{"error": "таблица недоступна"})
	case errors.Is(err, repository.ErrColumnNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "недопустимое поле"})
	case errors.Is(err, repository.ErrNoEditableValues):
		c.JSON(http.StatusBadRequest, gin.H{"error": "нет полей для изменения"})
	case errors.Is(err, repository.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "запись не найдена"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}

// parseRowID извлекает числовой ID из пути.
func parseRowID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалидный id"})
		return 0, false
	}
	return id, true
}
