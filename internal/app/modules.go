package app

import (
	"github.com/specialistvlad/blockpaste/internal/registry"
	"github.com/specialistvlad/blockpaste/modules/code"
	"github.com/specialistvlad/blockpaste/modules/link"
	"github.com/specialistvlad/blockpaste/modules/media"
	"github.com/specialistvlad/blockpaste/modules/table"
	"github.com/specialistvlad/blockpaste/modules/text"
)

// coreModules is the definitive list of all plugin modules compiled into
// the blockpaste binary, in registration order. Order matters: it decides
// which plugin wins an ambiguous tag and which shortcut wins a collision.
var coreModules = []registry.Module{
	&text.Module{},
	&link.Module{},
	&media.Module{},
	&code.Module{},
	&table.Module{},
}
