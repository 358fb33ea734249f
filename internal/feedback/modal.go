package feedback

import "fmt"

// Modal names a dialog of the board screen.
type Modal string

const (
	ErrorModal         Modal = "errorModal"
	CategoryModal      Modal = "categoryModal"
	ShareCategoryModal Modal = "shareCategoryModal"
	DeleteModal        Modal = "deleteModal"
)

// ParseModal maps a route parameter to a Modal.
func ParseModal(s string) (Modal, error) {
	switch m := Modal(s); m {
	case ErrorModal, CategoryModal, ShareCategoryModal, DeleteModal:
		return m, nil
	default:
		return "", fmt.Errorf("unknown modal %q", s)
	}
}

// Modals is the visibility of every dialog.
type Modals struct {
	Error         bool `json:"errorModal"`
	Category      bool `json:"categoryModal"`
	ShareCategory bool `json:"shareCategoryModal"`
	Delete        bool `json:"deleteModal"`
}

func (m *Modals) Open(which Modal)  { m.set(which, true) }
func (m *Modals) Close(which Modal) { m.set(which, false) }

// CloseAll hides every dialog (Escape key).
func (m *Modals) CloseAll() { *m = Modals{} }

// IsOpen reports the visibility of which.
func (m Modals) IsOpen(which Modal) bool {
	switch which {
	case ErrorModal:
		return m.Error
	case CategoryModal:
		return m.Category
	case ShareCategoryModal:
		return m.ShareCategory
	case DeleteModal:
		return m.Delete
	}
	return false
}

func (m *Modals) set(which Modal, v bool) {
	switch which {
	case ErrorModal:
		m.Error = v
	case CategoryModal:
		m.Category = v
	case ShareCategoryModal:
		m.ShareCategory = v
	case DeleteModal:
		m.Delete = v
	}
}
