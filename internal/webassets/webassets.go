// Package webassets はバイナリに埋め込まれた静的ファイルを提供する。
// ログインフォームと入会申請フォームなど、認証不要の公開ページを含む。
package webassets

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed public
var publicFS embed.FS

// FS は公開ディレクトリのファイルシステムを返す。
func FS() (fs.FS, error) {
	return fs.Sub(publicFS, "public")
}

// Handler は埋め込み静的ファイルを配信するHTTPハンドラーを返す。
func Handler() (http.Handler, error) {
	sub, err := FS()
	if err != nil {
		return nil, err
	}
	return http.FileServer(http.FS(sub)), nil
}
