package domain

// MaxUploadBytes — лимит размера загружаемого пользователем изображения (10 МБ).
const MaxUploadBytes = 10 << 20

// supportedImageTypes — допустимые MIME-типы загрузки.
var supportedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// IsSupportedImageType проверяет, что MIME-тип входит в список jpeg, jpg, png, webp.
func IsSupportedImageType(mime string) bool {
	_, ok := supportedImageTypes[mime]
	return ok
}

// Upload описывает изображение, загруженное пользователем для поиска.
type Upload struct {
	Data     []byte // байты изображения
	MimeType string // заявленный Content-Type файла
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

func NewUpload(data []byte, mimeType string, size int64, name string) *Upload {
	return &Upload{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}
