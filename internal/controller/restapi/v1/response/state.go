package response

import (
	"github.com/andreyxaxa/Image-To-3D/internal/entity"
)

type State struct {
	State   string          `json:"state" example:"image_selected"`
	Image   *Image          `json:"image,omitempty"`
	Model   *Model          `json:"model,omitempty"`
	Reason  string          `json:"reason,omitempty" example:"model overloaded"`
	Notices []entity.Notice `json:"notices"`
}

type Image struct {
	Name        string `json:"name" example:"cat.jpg"`
	ContentType string `json:"content_type" example:"image/jpeg"`
	Size        int64  `json:"size" example:"102400"`
	Preview     string `json:"preview,omitempty"`
}

type Model struct {
	ID       string           `json:"id"`
	Filename string           `json:"filename" example:"model.glb"`
	Size     int64            `json:"size"`
	View     entity.ModelView `json:"view"`
}

func NewState(s entity.Snapshot, notices []entity.Notice, view *entity.ModelView) State {
	resp := State{
		State:   string(s.State),
		Reason:  s.Reason,
		Notices: notices,
	}

	if resp.Notices == nil {
		resp.Notices = []entity.Notice{}
	}

	if s.Image != nil {
		resp.Image = &Image{
			Name:        s.Image.Name,
			ContentType: s.Image.ContentType,
			Size:        s.Image.Size,
			Preview:     s.Image.Preview,
		}
	}

	if s.Asset != nil && view != nil {
		resp.Model = &Model{
			ID:       s.Asset.ID.String(),
			Filename: s.Asset.Filename,
			Size:     s.Asset.Size,
			View:     *view,
		}
	}

	return resp
}
