package scan

import "os"

// fsReadDir is a var so tests can substitute a fake filesystem without
// touching disk, mirroring the seam go/packages leaves for its own
// driver indirection.
var fsReadDir = os.ReadDir
