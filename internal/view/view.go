// Package view は管理画面のHTMLテンプレートのレンダリングを提供する。
// テンプレートはバイナリに埋め込まれ、起動時に一度だけパースされる。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/hitoshi/memberdesk/internal/model"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Renderer は埋め込みテンプレートのレンダラー。
type Renderer struct {
	templates *template.Template
}

// NewRenderer は埋め込みテンプレートをパースしてRendererを生成する。
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("テンプレートのパースに失敗: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// AdminData は管理画面テンプレートに渡すデータ。
type AdminData struct {
	LoggedIn bool
}

// RenderAdmin は管理画面をレンダリングする。
func (r *Renderer) RenderAdmin(w io.Writer, data AdminData) error {
	if err := r.templates.ExecuteTemplate(w, "admin.html.tmpl", data); err != nil {
		return fmt.Errorf("管理画面のレンダリングに失敗: %w", err)
	}
	return nil
}

// RenderDashboard はダッシュボード画面をレンダリングする。
func (r *Renderer) RenderDashboard(w io.Writer) error {
	if err := r.templates.ExecuteTemplate(w, "dashboard.html.tmpl", nil); err != nil {
		return fmt.Errorf("ダッシュボードのレンダリングに失敗: %w", err)
	}
	return nil
}

// ProfileData はプロフィール画面テンプレートに渡すデータ。
type ProfileData struct {
	Profile model.Profile
}

// RenderProfile はプロフィール画面をレンダリングする。
func (r *Renderer) RenderProfile(w io.Writer, data ProfileData) error {
	if err := r.templates.ExecuteTemplate(w, "profile.html.tmpl", data); err != nil {
		return fmt.Errorf("プロフィール画面のレンダリングに失敗: %w", err)
	}
	return nil
}
