// Package preproc handles C-family preprocessing.
// It provides both an internal preprocessor implementation and fallback
// to an external system preprocessor (cc -E).
package preproc

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/opensrc-tools/cpre/pkg/cpp"
)

// Options configures the preprocessing step
type Options struct {
	IncludePaths           []string          // -I directories, searched for quoted includes
	SystemPaths            []string          // -isystem directories, searched for angle-bracket includes
	Defines                map[string]string // -D macros (name -> value, empty string for simple define)
	Undefines              []string          // -U macros
	IgnoreMacroDefinitions []string          // names #define may never (re)bind
	IgnoreMissingIncludes  bool
	UseExternal            bool // Force use of external preprocessor
}

// Preprocess runs the preprocessor on the given source file and returns
// the preprocessed source code as a string.
// By default, it uses the internal preprocessor. Set UseExternal option
// to force use of the system preprocessor.
func Preprocess(filename string, opts *Options) (string, error) {
	if opts != nil && opts.UseExternal {
		return preprocessExternal(filename, opts)
	}
	return preprocessInternal(filename, opts)
}

// preprocessInternal uses our internal pkg/cpp preprocessor
func preprocessInternal(filename string, opts *Options) (string, error) {
	ppOpts := cpp.Options{}
	if opts != nil {
		ppOpts.QuoteIncludePaths = opts.IncludePaths
		ppOpts.AngleIncludePaths = opts.SystemPaths
		ppOpts.Undefines = opts.Undefines
		ppOpts.IgnoreMacroDefinitions = opts.IgnoreMacroDefinitions
		ppOpts.IgnoreMissingIncludes = opts.IgnoreMissingIncludes
		ppOpts.Defines = opts.Defines
	}

	pp, err := cpp.NewPreprocessor(ppOpts)
	if err != nil {
		return "", err
	}
	return pp.ProcessFile(filename)
}

// preprocessExternal uses the system C preprocessor (cc -E). Only the
// option fields a real compiler's -E flag can actually honor (include
// paths, defines, undefines) translate into command-line flags here.
// IgnoreMacroDefinitions and IgnoreMissingIncludes are cpre-specific
// behaviors of the built-in pkg/cpp pipeline with no cc -E equivalent
// (a system preprocessor has no flag for "lock this macro name" or
// "treat a missing #include as empty"), so they're rejected up front
// rather than silently dropped.
func preprocessExternal(filename string, opts *Options) (string, error) {
	if opts != nil && len(opts.IgnoreMacroDefinitions) > 0 {
		return "", fmt.Errorf("IgnoreMacroDefinitions requires the built-in preprocessor, not --use-external")
	}
	if opts != nil && opts.IgnoreMissingIncludes {
		return "", fmt.Errorf("--ignore-missing-includes requires the built-in preprocessor, not --use-external")
	}

	args := []string{"-E"} // Preprocess only

	if opts != nil {
		for _, path := range opts.IncludePaths {
			args = append(args, "-I"+path)
		}
		for _, path := range opts.SystemPaths {
			args = append(args, "-isystem", path)
		}
		for name, value := range opts.Defines {
			if value == "" {
				args = append(args, "-D"+name)
			} else {
				args = append(args, "-D"+name+"="+value)
			}
		}
		for _, name := range opts.Undefines {
			args = append(args, "-U"+name)
		}
	}

	args = append(args, filename)

	cppCmd := findPreprocessor()
	if cppCmd == "" {
		return "", fmt.Errorf("no C preprocessor found (tried: cc, gcc, clang)")
	}

	cmd := exec.Command(cppCmd, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = filepath.Dir(filename)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("preprocessing failed: %v\n%s", err, stderr.String())
	}

	return stdout.String(), nil
}

// PreprocessString preprocesses source code provided as a string.
// It writes the source to a temporary file, preprocesses it, then cleans up.
func PreprocessString(source, filename string, opts *Options) (string, error) {
	tmpDir := os.TempDir()
	baseName := filepath.Base(filename)
	if baseName == "" {
		baseName = "source.c"
	}
	tmpFile := filepath.Join(tmpDir, "cpre-"+baseName)

	if err := os.WriteFile(tmpFile, []byte(source), 0644); err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile)

	return Preprocess(tmpFile, opts)
}

// NeedsPreprocessing returns true if the file might need preprocessing.
// Files ending in .i or .p are considered already preprocessed.
func NeedsPreprocessing(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != ".i" && ext != ".p"
}

// findPreprocessor searches for a C preprocessor on the system. A
// CPRE_CPP environment variable, when set to a resolvable command,
// takes priority over the standard cc/gcc/clang search order, the same
// way CC steers a build toward a specific compiler.
func findPreprocessor() string {
	if override := os.Getenv("CPRE_CPP"); override != "" {
		if path, err := exec.LookPath(override); err == nil {
			return path
		}
	}
	candidates := []string{"cc", "gcc", "clang"}
	for _, cmd := range candidates {
		if path, err := exec.LookPath(cmd); err == nil {
			return path
		}
	}
	return ""
}
