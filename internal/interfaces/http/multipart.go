package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
)

const (
	// maxImageBytes tamaño máximo aceptado para imágenes de categorías y productos.
	maxImageBytes = 5 << 20
	sniffBytes    = 3072
)

// multipartForm formulario ya parseado más el archivo de imagen abierto (si vino).
type multipartForm struct {
	form  *multipart.Form
	image *dto.ImageFile
	close func()
}

func (f *multipartForm) value(name string) string {
	if vs := f.form.Value[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// values devuelve todos los valores del campo repetido; también acepta una lista separada por comas.
func (f *multipartForm) values(name string) []string {
	var out []string
	for _, v := range f.form.Value[name] {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

// parseMultipart lee el formulario y abre el campo "image". close debe llamarse siempre.
func parseMultipart(c *fiber.Ctx) (*multipartForm, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	out := &multipartForm{form: form, close: func() {}}
	files := form.File["image"]
	if len(files) == 0 || files[0].Size == 0 {
		return out, nil
	}
	fh := files[0]
	if fh.Size > maxImageBytes {
		return nil, errImageTooLarge
	}
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	reader, err := sniffImage(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	out.image = &dto.ImageFile{Filename: fh.Filename, Size: fh.Size, Reader: reader}
	out.close = func() { _ = file.Close() }
	return out, nil
}

// sniffImage detecta el tipo por contenido (no por extensión ni por el Content-Type del cliente)
// y devuelve un reader que vuelve a incluir los bytes ya leídos.
func sniffImage(r io.Reader) (io.Reader, error) {
	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]
	if !strings.HasPrefix(mimetype.Detect(head).String(), "image/") {
		return nil, errImageType
	}
	return io.MultiReader(bytes.NewReader(head), r), nil
}

type formError string

func (e formError) Error() string { return string(e) }

const (
	errImageTooLarge = formError("Image must be 5 MB or smaller.")
	errImageType     = formError("Only image files are allowed.")
)

func formParseError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(formError); ok {
		return badRequest(c, "INVALID_IMAGE", string(fe))
	}
	return badRequest(c, "INVALID_FORM", "Invalid form data.")
}
