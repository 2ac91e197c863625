// Контроллер боковой формы (drawer) создания/редактирования записи.
//
// Логика намеренно отделена от Bubble Tea: состояние формы, валидация,
// маппинг ошибок backend на поля и защита от двойной отправки — чистые
// методы, проверяемые без запуска TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/upload"
)

// DrawerMode — режим формы.
type DrawerMode int

const (
	DrawerCreate DrawerMode = iota
	DrawerEdit
)

// conflictFields — известные machine-readable коды backend и поля,
// к которым прикрепляется сообщение. Неизвестный код уходит в общий
// notice формы, система на нем не ломается.
var conflictFields = map[string]string{
	"ACCOUNT_NUM_CONFLICT": "accountNum",
	"EMAIL_CONFLICT":       "email",
}

// FieldSpec описывает одно текстовое поле формы.
type FieldSpec struct {
	Key      string
	Label    string
	Required bool
	Secret   bool // пароли рендерятся маской
}

// FileFieldSpec описывает файловое поле (картинка баннера и т.п.).
type FileFieldSpec struct {
	Key      string
	Label    string
	Required bool
}

// FormField — поле формы вместе с его текущей ошибкой.
type FormField struct {
	Spec  FieldSpec
	Input textinput.Model
	Err   string
}

// Drawer — состояние открытой боковой формы.
//
// Жизненный цикл: Closed → Open(create|edit) → Closed. Повторная отправка
// при submitting == true игнорируется. Неудачная отправка оставляет форму
// открытой со всеми введенными значениями.
type Drawer struct {
	Title    string
	Mode     DrawerMode
	RecordID string // заполнен в режиме редактирования

	fields     []*FormField
	fileFields []FileFieldSpec
	Uploads    *upload.Tracker

	focus      int
	submitting bool

	// Notice — общая ошибка формы (не привязанная к полю)
	Notice string
}

// NewDrawer создает форму по спецификации полей.
func NewDrawer(title string, mode DrawerMode, specs []FieldSpec, fileSpecs []FileFieldSpec) *Drawer {
	fields := make([]*FormField, 0, len(specs))
	for i, spec := range specs {
		input := textinput.New()
		input.Placeholder = spec.Label
		input.CharLimit = 200
		if spec.Secret {
			input.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			input.Focus()
		}
		fields = append(fields, &FormField{Spec: spec, Input: input})
	}

	return &Drawer{
		Title:      title,
		Mode:       mode,
		fields:     fields,
		fileFields: fileSpecs,
		Uploads:    upload.NewTracker(),
	}
}

// Fields возвращает поля для рендеринга.
func (d *Drawer) Fields() []*FormField {
	return d.fields
}

// FileFields возвращает файловые поля.
func (d *Drawer) FileFields() []FileFieldSpec {
	return d.fileFields
}

// SetValue заполняет поле (префилл режима редактирования).
func (d *Drawer) SetValue(key, value string) {
	for _, f := range d.fields {
		if f.Spec.Key == key {
			f.Input.SetValue(value)
			return
		}
	}
}

// Value возвращает текущее значение поля.
func (d *Drawer) Value(key string) string {
	for _, f := range d.fields {
		if f.Spec.Key == key {
			return f.Input.Value()
		}
	}
	return ""
}

// FieldError возвращает ошибку поля ("" если ошибки нет).
func (d *Drawer) FieldError(key string) string {
	for _, f := range d.fields {
		if f.Spec.Key == key {
			return f.Err
		}
	}
	return ""
}

// Submitting сообщает, идет ли отправка.
func (d *Drawer) Submitting() bool {
	return d.submitting
}

// FocusNext переводит фокус на следующее поле.
func (d *Drawer) FocusNext() {
	if len(d.fields) == 0 {
		return
	}
	d.fields[d.focus].Input.Blur()
	d.focus = (d.focus + 1) % len(d.fields)
	d.fields[d.focus].Input.Focus()
}

// FocusPrev переводит фокус на предыдущее поле.
func (d *Drawer) FocusPrev() {
	if len(d.fields) == 0 {
		return
	}
	d.fields[d.focus].Input.Blur()
	d.focus = (d.focus - 1 + len(d.fields)) % len(d.fields)
	d.fields[d.focus].Input.Focus()
}

// Focused возвращает поле под фокусом.
func (d *Drawer) Focused() *FormField {
	if len(d.fields) == 0 {
		return nil
	}
	return d.fields[d.focus]
}

// validate проверяет обязательные текстовые поля. Ошибки пишутся в поля.
func (d *Drawer) validate() bool {
	ok := true
	for _, f := range d.fields {
		f.Err = ""
		if f.Spec.Required && strings.TrimSpace(f.Input.Value()) == "" {
			f.Err = "Required"
			ok = false
		}
	}
	return ok
}

// requiredFileKeys возвращает ключи обязательных файловых полей.
func (d *Drawer) requiredFileKeys() []string {
	var keys []string
	for _, f := range d.fileFields {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// TrySubmit проверяет форму и помечает её отправляющейся.
//
// Возвращает false когда отправлять нельзя:
//   - отправка уже идет (защита от двойного Enter)
//   - не заполнены обязательные текстовые поля
//   - обязательная загрузка файла не завершена — в сеть не ходим вовсе
//
// При true вызывающий обязан завершить цикл через FinishSubmit.
func (d *Drawer) TrySubmit() bool {
	if d.submitting {
		return false
	}

	d.Notice = ""
	if !d.validate() {
		return false
	}

	if keys := d.requiredFileKeys(); !d.Uploads.Ready(keys...) {
		d.Notice = "Дождитесь завершения загрузки файла"
		return false
	}

	d.submitting = true
	return true
}

// Body собирает тело запроса из значений формы.
// Файловые поля подставляются URL-ами завершенных загрузок; служебные
// поля путей (префикс "file:") в тело не попадают.
func (d *Drawer) Body() map[string]interface{} {
	body := make(map[string]interface{}, len(d.fields)+len(d.fileFields))
	for _, f := range d.fields {
		if strings.HasPrefix(f.Spec.Key, "file:") {
			continue
		}
		value := strings.TrimSpace(f.Input.Value())
		if value == "" && d.Mode != DrawerEdit {
			// При создании пустые значения не отправляем. При
			// редактировании PUT замещает запись целиком: пустое поле —
			// это явная очистка, и его нужно отправить.
			continue
		}
		body[f.Spec.Key] = value
	}
	for _, f := range d.fileFields {
		if url := d.Uploads.URL(f.Key); url != "" {
			body[f.Key] = url
		}
	}
	return body
}

// FinishSubmit завершает цикл отправки.
//
// Возвращает true если форму можно закрывать (успех). При ошибке форма
// остаётся открытой, введенные значения сохраняются, а ошибка backend
// раскладывается по полям.
func (d *Drawer) FinishSubmit(err error) bool {
	d.submitting = false
	if err == nil {
		return true
	}
	d.applyError(err)
	return false
}

// applyError мапит ошибку backend на поля формы.
//
// Порядок: привязанные к полям ошибки из fields, затем известный code на его
// поле, остальное — в общий notice.
func (d *Drawer) applyError(err error) {
	apiErr := api.AsAPIError(err)
	if apiErr == nil {
		d.Notice = api.ClassifyError(err).HumanMessage()
		return
	}

	attached := false
	for key, msgs := range apiErr.Fields {
		if len(msgs) == 0 {
			continue
		}
		for _, f := range d.fields {
			if f.Spec.Key == key {
				f.Err = msgs[0]
				attached = true
			}
		}
	}

	if fieldKey, ok := conflictFields[apiErr.Code]; ok {
		for _, f := range d.fields {
			if f.Spec.Key == fieldKey {
				f.Err = apiErr.Message()
				attached = true
			}
		}
	}

	if !attached {
		d.Notice = strings.Join(apiErr.Messages(), "; ")
	}
}
