package appfs

import "embed"

// FS embeds the SQL migrations so a deployed binary is self-contained.
//
//go:embed migrations/*.sql
var FS embed.FS
