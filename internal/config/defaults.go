package config

import "runtime"

const (
	defaultLogDir           = "~/.local/share/glyphsmith/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultEngineName       = "fontforge"
	defaultShell            = ShellNone
	defaultOptimizeScript   = "optimize_glyph.py"
	defaultConvertScript    = "convert_font.py"
	defaultMergeScript      = "merge_svg_font.py"
	defaultSimplify         = 0.5
	defaultConvertFormat    = "woff2"
	defaultMergeFontName    = "CustomFont"
	defaultMergeOutputName  = "output_font.svg"
	defaultCodePage         = 65001
	defaultFallbackCodePage = 936
	defaultFallbackEncoding = "gbk"
	tempRootName            = "glyphsmith"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Engine: Engine{
			Shell:          defaultShell,
			OptimizeScript: defaultOptimizeScript,
			ConvertScript:  defaultConvertScript,
			MergeScript:    defaultMergeScript,
		},
		Optimize: Optimize{
			Simplify: defaultSimplify,
		},
		Convert: Convert{
			Format: defaultConvertFormat,
		},
		Merge: Merge{
			FontName:   defaultMergeFontName,
			OutputName: defaultMergeOutputName,
		},
		Output: Output{
			Overwrite: true,
		},
		Console: Console{
			CodePage:         defaultCodePage,
			FallbackCodePage: defaultFallbackCodePage,
			FallbackEncoding: defaultFallbackEncoding,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

func engineExecutableName() string {
	if runtime.GOOS == "windows" {
		return defaultEngineName + ".exe"
	}
	return defaultEngineName
}
