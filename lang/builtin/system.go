package builtin

import (
	"bufio"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/nova/lang"
)

// Host information does not change while the process runs.
//
//nolint:gochecknoglobals
var hostInfo = sync.OnceValue(func() map[string]lang.Value {
	return map[string]lang.Value{
		"target":   targetObject(getTarget()),
		"platform": targetObject(getPlatform()),
		"hostname": lang.Str(getHostname()),
		"user":     userObject(getUser()),
		"shell":    lang.Str(getShell()),
	}
})

func systemTable(cfg config) map[string]lang.Value {
	table := map[string]lang.Value{
		"cwd": lang.NewNative("cwd", cwdFunc),
		"env": lang.NewNative("env", envFunc(buildProcessEnvMap(cfg.environ))),
		"file": namespace("file", map[string]lang.NativeFunc{
			"exists":    predicateFunc("file.exists", fileExists),
			"isDir":     predicateFunc("file.isDir", fileIsDir),
			"isRegular": predicateFunc("file.isRegular", fileIsRegular),
			"isSymlink": predicateFunc("file.isSymlink", fileIsSymlink),
		}, "exists", "isDir", "isRegular", "isSymlink"),
		"path": namespace("path", map[string]lang.NativeFunc{
			"abs":  pathAbsFunc,
			"join": pathJoinFunc,
			"rel":  pathRelFunc,
		}, "abs", "join", "rel"),
		"pathlist": namespace("pathlist", map[string]lang.NativeFunc{
			"prefix":   pathlistPrefix,
			"prefixIf": pathlistPrefixIf,
		}, "prefix", "prefixIf"),
	}

	for name, v := range hostInfo() {
		table[name] = v
	}

	return table
}

// ---------------------------------------------------------------------------
// System information
// ---------------------------------------------------------------------------

// target contains string identifiers for a target operating system and
// instruction set architecture.
type target struct {
	OS   string
	Arch string
}

func targetObject(t target) *lang.Object {
	return lang.NewObject().
		Set("os", lang.Str(t.OS)).
		Set("arch", lang.Str(t.Arch))
}

// getTarget returns the host target using GNU GCC/LLVM naming conventions.
func getTarget() target {
	t := getPlatform()

	switch t.Arch {
	case "386":
		t.Arch = "i386"
	case "amd64":
		t.Arch = "x86_64"
	case "arm":
		arm, ok := os.LookupEnv("GOARM")
		if ok {
			arm, _, _ = strings.Cut(arm, ",")
			switch arm = strings.TrimSpace(arm); arm {
			case "5", "6", "7":
				t.Arch = "armv" + arm
			}
		}
	case "arm64":
		if t.OS != "darwin" {
			t.Arch = "aarch64"
		}
	case "mipsle":
		t.Arch = "mipsel"
	}

	return t
}

// getPlatform returns the host target using Go conventions.
func getPlatform() target {
	var (
		o, a string
		ok   bool
	)

	if o, ok = os.LookupEnv("GOHOSTOS"); !ok {
		if o, ok = os.LookupEnv("GOOS"); !ok {
			o = runtime.GOOS
		}
	}

	if a, ok = os.LookupEnv("GOHOSTARCH"); !ok {
		if a, ok = os.LookupEnv("GOARCH"); !ok {
			a = runtime.GOARCH
		}
	}

	return target{OS: o, Arch: a}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getUser() *user.User {
	u, err := user.Current()
	if err != nil {
		return nil
	}

	return u
}

func userObject(u *user.User) lang.Value {
	if u == nil {
		return lang.Null{}
	}

	return lang.NewObject().
		Set("username", lang.Str(u.Username)).
		Set("name", lang.Str(u.Name)).
		Set("uid", lang.Str(u.Uid)).
		Set("gid", lang.Str(u.Gid)).
		Set("home", lang.Str(u.HomeDir))
}

func getShell() string {
	if shell, ok := os.LookupEnv("SHELL"); ok {
		return shell
	}

	u := getUser()
	if u == nil || u.Username == "" {
		return ""
	}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return ""
	}

	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		e := strings.Split(s.Text(), ":")
		if len(e) > 6 && e[0] == u.Username {
			return e[6]
		}
	}

	return ""
}

// ---------------------------------------------------------------------------
// Working directory and process environment
// ---------------------------------------------------------------------------

func cwdFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("cwd", args, 0); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return lang.Str(pathAbs(".")), nil
	}

	return lang.Str(cwd), nil
}

// buildProcessEnvMap converts a "KEY=VALUE" list to a map.
// If environ is nil, os.Environ() is used.
func buildProcessEnvMap(environ []string) map[string]string {
	if environ == nil {
		environ = os.Environ()
	}

	result := make(map[string]string, len(environ))

	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

// envFunc returns env(key), which yields the value of an environment
// variable or null if it is unset.
func envFunc(processEnv map[string]string) lang.NativeFunc {
	return func(args []lang.Value, _ *lang.Env) (lang.Value, error) {
		if err := arity("env", args, 1); err != nil {
			return nil, err
		}

		key, err := str("env", args, 0)
		if err != nil {
			return nil, err
		}

		if v, ok := processEnv[key]; ok {
			return lang.Str(v), nil
		}

		return lang.Null{}, nil
	}
}

// ---------------------------------------------------------------------------
// Filesystem predicates
// ---------------------------------------------------------------------------

// predicates are the file tests pathlist.prefixIf accepts by name.
var predicates = map[string]func(string) bool{
	"exists":    fileExists,
	"isDir":     fileIsDir,
	"isRegular": fileIsRegular,
	"isSymlink": fileIsSymlink,
}

func predicateFunc(name string, pred func(string) bool) lang.NativeFunc {
	return func(args []lang.Value, _ *lang.Env) (lang.Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}

		path, err := str(name, args, 0)
		if err != nil {
			return nil, err
		}

		return lang.Bool(pred(path)), nil
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}

// ---------------------------------------------------------------------------
// Path manipulation
// ---------------------------------------------------------------------------

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return filepath.Join(from, to)
	}

	return p
}

func pathAbsFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("path.abs", args, 1); err != nil {
		return nil, err
	}

	path, err := str("path.abs", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Str(pathAbs(path)), nil
}

func pathJoinFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	elem, err := strs("path.join", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Str(filepath.Join(elem...)), nil
}

func pathRelFunc(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if err := arity("path.rel", args, 2); err != nil {
		return nil, err
	}

	s, err := strs("path.rel", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Str(pathRel(s[0], s[1])), nil
}

// ---------------------------------------------------------------------------
// PATH-like list manipulation (mung)
// ---------------------------------------------------------------------------

// pathlistPrefix returns pathlist.prefix(list, items...): the
// os.PathListSeparator-delimited list with items moved or added to the front.
func pathlistPrefix(args []lang.Value, _ *lang.Env) (lang.Value, error) {
	if len(args) < 1 {
		return nil, arity("pathlist.prefix", args, 1)
	}

	s, err := strs("pathlist.prefix", args, 0)
	if err != nil {
		return nil, err
	}

	return lang.Str(mung.Make(
		mung.WithSubjectItems(s[0]),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(s[1:]...),
	).String()), nil
}

// pathlistPrefixIf is pathlist.prefix with a filter applied to the items.
// The filter is either the name of a file predicate ("exists", "isDir",
// "isRegular", "isSymlink") or a native function returning a boolean.
func pathlistPrefixIf(args []lang.Value, env *lang.Env) (lang.Value, error) {
	const name = "pathlist.prefixIf"

	if len(args) < 2 {
		return nil, arity(name, args, 2)
	}

	list, err := str(name, args, 0)
	if err != nil {
		return nil, err
	}

	items, err := strs(name, args, 2)
	if err != nil {
		return nil, err
	}

	var (
		pred    func(string) bool
		predErr error
	)

	switch p := args[1].(type) {
	case lang.Str:
		var ok bool
		if pred, ok = predicates[string(p)]; !ok {
			return nil, argType(name, 1, "file predicate name", args[1])
		}
	case *lang.Native:
		pred = func(item string) bool {
			if predErr != nil {
				return false
			}

			v, err := p.Call([]lang.Value{lang.Str(item)}, env)
			if err != nil {
				predErr = err

				return false
			}

			b, ok := v.(lang.Bool)

			return ok && bool(b)
		}
	default:
		return nil, argType(name, 1, "predicate name or native", args[1])
	}

	out := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
		mung.WithFilter(pred),
	).String()

	if predErr != nil {
		return nil, fail(name, predErr)
	}

	return lang.Str(out), nil
}
