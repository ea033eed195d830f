package catalog

// Vendored default tables. Extension entries that fully determine the
// encoding carry a "text" or "binary" tag; entries in
// defaultExtensionsNeedBinaryCheck deliberately do not, leaving the
// decision to the content sniff.

var defaultExtensions = map[string][]string{
	"adoc":       {"text", "asciidoc"},
	"asciidoc":   {"text", "asciidoc"},
	"apinotes":   {"text", "apinotes"},
	"avif":       {"binary", "image", "avif"},
	"bash":       {"text", "shell", "bash"},
	"bat":        {"text", "batch"},
	"bib":        {"text", "bib"},
	"bmp":        {"binary", "image", "bitmap"},
	"bz2":        {"binary", "bzip2"},
	"c":          {"text", "c"},
	"cc":         {"text", "c++"},
	"cfg":        {"text"},
	"cjs":        {"text", "javascript"},
	"clj":        {"text", "clojure"},
	"cmake":      {"text", "cmake"},
	"coffee":     {"text", "coffee"},
	"conf":       {"text"},
	"cpp":        {"text", "c++"},
	"cr":         {"text", "crystal"},
	"cs":         {"text", "c#"},
	"css":        {"text", "css"},
	"csv":        {"text", "csv"},
	"cu":         {"text", "cuda"},
	"cxx":        {"text", "c++"},
	"dart":       {"text", "dart"},
	"diff":       {"text", "diff"},
	"dtd":        {"text", "dtd"},
	"ear":        {"binary", "zip", "jar"},
	"el":         {"text", "lisp"},
	"elm":        {"text", "elm"},
	"eot":        {"binary", "eot"},
	"erb":        {"text", "erb"},
	"erl":        {"text", "erlang"},
	"ex":         {"text", "elixir"},
	"exe":        {"binary"},
	"exs":        {"text", "elixir"},
	"f":          {"text", "fortran"},
	"f90":        {"text", "fortran"},
	"fish":       {"text", "fish"},
	"gemspec":    {"text", "ruby"},
	"gif":        {"binary", "image", "gif"},
	"go":         {"text", "go"},
	"gotmpl":     {"text", "gotmpl"},
	"gpx":        {"text", "gpx", "xml"},
	"gradle":     {"text", "groovy"},
	"graphql":    {"text", "graphql"},
	"groovy":     {"text", "groovy"},
	"gz":         {"binary", "gzip"},
	"h":          {"text", "header", "c", "c++"},
	"hcl":        {"text", "hcl"},
	"hpp":        {"text", "header", "c++"},
	"hs":         {"text", "haskell"},
	"htm":        {"text", "html"},
	"html":       {"text", "html"},
	"icns":       {"binary", "icns"},
	"ico":        {"binary", "icon"},
	"ini":        {"text", "ini"},
	"ipynb":      {"text", "jupyter", "json"},
	"j2":         {"text", "jinja"},
	"jade":       {"text", "jade"},
	"jar":        {"binary", "zip", "jar"},
	"java":       {"text", "java"},
	"jenkins":    {"text", "groovy", "jenkins"},
	"jinja":      {"text", "jinja"},
	"jinja2":     {"text", "jinja"},
	"jl":         {"text", "julia"},
	"jpeg":       {"binary", "image", "jpeg"},
	"jpg":        {"binary", "image", "jpeg"},
	"js":         {"text", "javascript"},
	"json":       {"text", "json"},
	"json5":      {"text", "json5"},
	"jsonnet":    {"text", "jsonnet"},
	"jsx":        {"text", "jsx"},
	"kml":        {"text", "kml", "xml"},
	"kt":         {"text", "kotlin"},
	"kts":        {"text", "kotlin"},
	"less":       {"text", "less"},
	"lua":        {"text", "lua"},
	"m":          {"text", "objective-c"},
	"manifest":   {"text", "manifest"},
	"markdown":   {"text", "markdown"},
	"md":         {"text", "markdown"},
	"mjs":        {"text", "javascript"},
	"mk":         {"text", "makefile"},
	"ml":         {"text", "ocaml"},
	"mov":        {"binary", "video", "quicktime"},
	"mp3":        {"binary", "audio", "mp3"},
	"mp4":        {"binary", "video", "mp4"},
	"mustache":   {"text", "mustache"},
	"ngdoc":      {"text", "ngdoc"},
	"nim":        {"text", "nim"},
	"nix":        {"text", "nix"},
	"otf":        {"binary", "otf"},
	"p12":        {"binary", "p12"},
	"patch":      {"text", "diff"},
	"pdf":        {"binary", "pdf"},
	"php":        {"text", "php"},
	"pl":         {"text", "perl"},
	"pm":         {"text", "perl"},
	"png":        {"binary", "image", "png"},
	"po":         {"text", "pofile"},
	"pp":         {"text", "puppet"},
	"proto":      {"text", "proto"},
	"ps1":        {"text", "powershell"},
	"pug":        {"text", "pug"},
	"puml":       {"text", "plantuml"},
	"py":         {"text", "python"},
	"pyi":        {"text", "pyi"},
	"pyx":        {"text", "cython"},
	"r":          {"text", "r"},
	"rb":         {"text", "ruby"},
	"rs":         {"text", "rust"},
	"rst":        {"text", "rst"},
	"sass":       {"text", "sass"},
	"scala":      {"text", "scala"},
	"scss":       {"text", "scss"},
	"sh":         {"text", "shell"},
	"sln":        {"text", "sln"},
	"so":         {"binary"},
	"sql":        {"text", "sql"},
	"svg":        {"text", "image", "svg", "xml"},
	"swift":      {"text", "swift"},
	"tac":        {"text", "twisted", "python"},
	"tar":        {"binary", "tar"},
	"tex":        {"text", "tex"},
	"tf":         {"text", "terraform"},
	"tfvars":     {"text", "terraform"},
	"tgz":        {"binary", "gzip"},
	"toml":       {"text", "toml"},
	"ts":         {"text", "ts"},
	"tsv":        {"text", "tsv"},
	"tsx":        {"text", "tsx"},
	"ttf":        {"binary", "ttf"},
	"txt":        {"text", "plain-text"},
	"vb":         {"text", "vb"},
	"vim":        {"text", "vim"},
	"vue":        {"text", "vue"},
	"war":        {"binary", "zip", "jar"},
	"wav":        {"binary", "audio", "wav"},
	"webp":       {"binary", "image", "webp"},
	"whl":        {"binary", "wheel", "zip"},
	"woff":       {"binary", "woff"},
	"woff2":      {"binary", "woff2"},
	"wsgi":       {"text", "wsgi", "python"},
	"xhtml":      {"text", "xml", "html", "xhtml"},
	"xml":        {"text", "xml"},
	"xq":         {"text", "xquery"},
	"xsd":        {"text", "xml", "xsd"},
	"xsl":        {"text", "xml", "xsl"},
	"yaml":       {"text", "yaml"},
	"yang":       {"text", "yang"},
	"yin":        {"text", "xml", "yin"},
	"yml":        {"text", "yaml"},
	"zig":        {"text", "zig"},
	"zip":        {"binary", "zip"},
	"zsh":        {"text", "shell", "zsh"},
	"zst":        {"binary", "zstd"},
}

// Extensions whose payload may be either text or binary on disk. The
// classifier still sniffs the content after matching one of these.
var defaultExtensionsNeedBinaryCheck = map[string][]string{
	"db":     {"database"},
	"lkml":   {"lookml"},
	"pem":    {"pem"},
	"plist":  {"plist"},
	"ppm":    {"image", "ppm"},
	"pickle": {"pickle"},
}

var defaultNames = map[string][]string{
	".ansible-lint":       {"text", "yaml"},
	".babelrc":            {"text", "json", "babelrc"},
	".bash_profile":       {"text", "shell", "bash"},
	".bashrc":             {"text", "shell", "bash"},
	".coveragerc":         {"text", "ini", "coveragerc"},
	".dockerignore":       {"text", "dockerignore"},
	".editorconfig":       {"text", "editorconfig"},
	".flake8":             {"text", "ini", "flake8"},
	".gitattributes":      {"text", "gitattributes"},
	".gitignore":          {"text", "gitignore"},
	".gitmodules":         {"text", "gitmodules"},
	".jshintrc":           {"text", "jshintrc", "json"},
	".mailmap":            {"text", "mailmap"},
	".mention-bot":        {"text", "json", "mention-bot"},
	".npmignore":          {"text", "npmignore"},
	".pdbrc":              {"text", "pdbrc", "python"},
	".prettierignore":     {"text", "gitignore", "prettierignore"},
	".pypirc":             {"text", "ini", "pypirc"},
	".rstcheck.cfg":       {"text", "ini"},
	".yamllint":           {"text", "yaml"},
	".zshenv":             {"text", "shell", "zsh"},
	".zshrc":              {"text", "shell", "zsh"},
	"AUTHORS":             {"text", "plain-text"},
	"BUILD":               {"text", "bazel"},
	"BUILD.bazel":         {"text", "bazel"},
	"CMakeLists.txt":      {"text", "cmake"},
	"CHANGELOG":           {"text", "plain-text"},
	"Cargo.toml":          {"text", "toml", "cargo"},
	"Cargo.lock":          {"text", "toml", "cargo-lock"},
	"Containerfile":       {"text", "dockerfile"},
	"Dockerfile":          {"text", "dockerfile"},
	"Gemfile":             {"text", "ruby", "gemfile"},
	"Gemfile.lock":        {"text", "gemfile-lock"},
	"GNUmakefile":         {"text", "makefile"},
	"Jenkinsfile":         {"text", "groovy", "jenkins"},
	"LICENSE":             {"text", "license"},
	"Makefile":            {"text", "makefile"},
	"NOTICE":              {"text", "plain-text"},
	"Pipfile":             {"text", "toml", "pipfile"},
	"Pipfile.lock":        {"text", "json", "pipfile-lock"},
	"README":              {"text", "plain-text"},
	"Rakefile":            {"text", "ruby", "rakefile"},
	"Vagrantfile":         {"text", "ruby", "vagrantfile"},
	"WORKSPACE":           {"text", "bazel"},
	"go.mod":              {"text", "go-mod"},
	"go.sum":              {"text", "go-sum"},
	"makefile":            {"text", "makefile"},
	"meson.build":         {"text", "meson"},
	"package.json":        {"text", "json", "package-json"},
	"package-lock.json":   {"text", "json", "package-lock-json"},
	"pylintrc":            {"text", "ini", "pylintrc"},
	"requirements.txt":    {"text", "requirements-txt"},
	"setup.cfg":           {"text", "ini", "setup-cfg"},
	"yarn.lock":           {"text", "yarn-lock"},
}

var defaultInterpreters = map[string][]string{
	"ash":     {"shell", "ash"},
	"awk":     {"awk"},
	"bash":    {"shell", "bash"},
	"bats":    {"shell", "bash", "bats"},
	"cbsd":    {"shell", "cbsd"},
	"csh":     {"shell", "csh"},
	"dash":    {"shell", "dash"},
	"expect":  {"expect"},
	"fish":    {"shell", "fish"},
	"gawk":    {"awk", "gawk"},
	"gnuplot": {"gnuplot"},
	"groovy":  {"groovy"},
	"ksh":     {"shell", "ksh"},
	"lua":     {"lua"},
	"make":    {"makefile"},
	"node":    {"javascript"},
	"nodejs":  {"javascript"},
	"perl":    {"perl"},
	"php":     {"php"},
	"php7":    {"php", "php7"},
	"php8":    {"php", "php8"},
	"pwsh":    {"powershell", "pwsh"},
	"python":  {"python"},
	"python2": {"python", "python2"},
	"python3": {"python", "python3"},
	"Rscript": {"r"},
	"ruby":    {"ruby"},
	"sh":      {"shell", "sh"},
	"tcsh":    {"shell", "tcsh"},
	"zsh":     {"shell", "zsh"},
}
