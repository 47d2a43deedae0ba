package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// menusDir is the key prefix every menu file lives under.
const menusDir = "menus"

// objectKey builds a collision-free key that keeps the uploaded file name readable.
func objectKey(name string) string {
	return menusDir + "/" + uuid.NewString() + "_" + cleanName(name)
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "menu"
	}
	return name
}
