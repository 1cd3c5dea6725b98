package cmd

import (
	"github.com/ardnew/nova/lang"
	"github.com/ardnew/nova/pkg"
)

var (
	ErrExtension   = lang.NewError("source file must have extension " + pkg.Extension)
	ErrReadSource  = lang.NewError("read source file")
	ErrRun         = lang.NewError("run script")
	ErrSetup       = lang.NewError("initialize interpreter")
	ErrMarshal     = lang.NewError("format syntax tree")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
)
