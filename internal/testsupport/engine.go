package testsupport

// EngineStub mimics "fontforge -script FILE ARGS..." by running FILE with sh.
const EngineStub = `#!/bin/sh
if [ "$1" != "-script" ]; then
  echo "usage: fontforge -script FILE [ARGS]" >&2
  exit 64
fi
shift
script="$1"
shift
exec /bin/sh "$script" "$@"
`

// OptimizeScript writes NAME_merge_glyphs.EXT next to the staged input.
const OptimizeScript = `in="$1"
stem="${in%.*}"
ext="${in##*.}"
if [ "$2" != "-s" ] || [ -z "$3" ]; then
  echo "missing simplify factor" >&2
  exit 2
fi
cp "$in" "${stem}_merge_glyphs.${ext}" || exit 1
printf 'optimized %s\n' "$in"
`

// ConvertScript copies the input to the -o target.
const ConvertScript = `in="$1"
shift
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
if [ -z "$out" ]; then
  echo "missing -o" >&2
  exit 2
fi
cp "$in" "$out" || exit 1
`

// MergeScript writes a tiny SVG font named after the third argument.
const MergeScript = `dir="$1"
out="$2"
name="$3"
count=$(ls "$dir"/*.svg 2>/dev/null | wc -l | tr -d ' ')
printf '<svg><font id="%s" glyphs="%s"/></svg>\n' "$name" "$count" > "$out"
`

// FailingScript exits 1 after writing a multi-line diagnostic to stderr.
const FailingScript = `echo "Traceback (most recent call last):" >&2
echo "  File \"script.py\", line 12" >&2
echo "fontforge.error: Glyph U+4E00 has an open contour" >&2
exit 1
`

// CrashingScript writes a diagnostic to stderr and then dies on SIGSEGV.
const CrashingScript = `echo "fontforge: unsupported glyph" >&2
kill -SEGV $$
`

// SilentScript exits 0 without producing any file.
const SilentScript = `exit 0
`

// ArgvScript appends every argument on its own line to $ARGV_LOG and then
// behaves like ConvertScript.
const ArgvScript = `for arg in "$@"; do
  printf '%s\n' "$arg" >> "$ARGV_LOG"
done
` + ConvertScript
