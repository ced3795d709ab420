package link

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var shTemplate = template.Must(template.New("sh").Parse(`#!/bin/sh
basedir=$(dirname "$(echo "$0" | sed -e 's,\\,/,g')")

if [ -x "$basedir/node" ]; then
  exec "$basedir/node" "$basedir/{{.Bin}}" "$@"
else
  exec node "$basedir/{{.Bin}}" "$@"
fi
`))

var cmdTemplate = template.Must(template.New("cmd").Parse(`@ECHO off
SETLOCAL
IF EXIST "%~dp0\node.exe" (
  SET "_prog=%~dp0\node.exe"
) ELSE (
  SET "_prog=node"
)
"%_prog%" "%~dp0\{{.Bin}}" %*
`))

type shimData struct {
	Bin string // Script path relative to the bin directory
}

// writeShims writes a shell shim at path and a cmd shim at path+".cmd",
// both running target with node. It reports false when neither had to be
// written.
func writeShims(path, target string) (bool, error) {
	dir := filepath.Dir(path)
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		rel = target
	}

	sh, err := renderShim(shTemplate, path, shimData{Bin: filepath.ToSlash(rel)})
	if err != nil {
		return false, err
	}
	cmd, err := renderShim(cmdTemplate, path+".cmd", shimData{Bin: strings.ReplaceAll(rel, "/", "\\")})
	if err != nil {
		return false, err
	}
	return sh || cmd, nil
}

func renderShim(t *template.Template, path string, data shimData) (bool, error) {
	if exists(path) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0755)
	if err != nil {
		return false, err
	}
	if err := t.Execute(f, data); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
