package engine

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/wudi/pdfstamp/preset"
)

// Permission bits from the PDF specification. Printing grants both the
// regular and high-quality print bits.
const (
	permPrint    = 0x0004
	permModify   = 0x0008
	permCopy     = 0x0010
	permAnnotate = 0x0020
	permFormFill = 0x0100
	permAssemble = 0x0400
	permPrintHQ  = 0x0800
)

// permissionMask builds the encryption permission flags from the allow
// switches, starting from the all-denied base.
func permissionMask(s preset.SecuritySettings) model.PermissionFlags {
	perms := model.PermissionsNone
	if s.AllowPrint {
		perms |= permPrint | permPrintHQ
	}
	if s.AllowModify {
		perms |= permModify
	}
	if s.AllowCopy {
		perms |= permCopy
	}
	if s.AllowAnnotate {
		perms |= permAnnotate
	}
	if s.AllowFormFill {
		perms |= permFormFill
	}
	if s.AllowAssemble {
		perms |= permAssemble
	}
	return perms
}
