// # jsdocmd
//
// `jsdocmd` renders JSDoc documentation as a single Markdown file. It runs the
// `jsdoc` extractor in explain mode (`jsdoc -X`), rebuilds the documentation
// tree from the flat doclet table, and prints it as GitHub-friendly Markdown:
// an index of classes and modules followed by one block per class, module,
// function and member, with parameter tables, examples and "See" links.
//
// ## Usage
//
//	go run . [flags] [pattern...]
//
// Examples:
//
//   - Document every JavaScript file under ./src into docs/README.md:
//
//     go run . -i ./src -o docs/
//
//   - Splice the output into a hand-written README template:
//
//     go run . -i ./src -t docs.md -o README.md '**/*.[jt]s' '!**/*.test.js'
//
//   - Render a doclet dump produced elsewhere:
//
//     jsdoc -X src/*.js | go run . --records - -o -
//
// ## Supported Flags
//
//   - `-c FILE`: read settings from FILE instead of `.jsdocmd.yaml`.
//   - `-i DIR`: directory the patterns are relative to (default `.`).
//   - `-t FILE`: template; the first `{{jsdoc}}` is replaced by the document.
//   - `-o FILE`: destination. A trailing `/` writes `README.md` into that
//     directory, `-` writes to stdout.
//   - `--output-dir DIR`: directory `-o` is relative to.
//   - `--jsdoc PATH`: jsdoc executable. By default `node_modules/.bin/jsdoc` is
//     searched from the input directory upwards, then `$PATH`.
//   - `--records FILE`: read doclets from a `jsdoc -X` dump (`-` for stdin).
//   - `--format html`: convert the final document to HTML.
//   - `-v`: debug logging on stderr.
//
// The jsdoc template calling convention is accepted as well: `-d DEST` sets
// the destination and `-q template=FILE` the template.
//
// ## Configuration
//
// Settings can be kept in `.jsdocmd.yaml`; paths are relative to the file and
// flags take precedence:
//
//	glob:
//	  - "**/*.[jt]s"
//	  - "!vendor/**"
//	inputDir: src
//	templateFile: docs.md
//	outputDir: docs/
//	outputFile: README.md
//
// ## Templates
//
// Only the first `{{jsdoc}}` marker is replaced. A template without the marker
// is written unchanged and the generated document is dropped; a warning is
// logged in that case.
//
// ## Shell Completion
//
//	go run . completion bash        # bash
//	go run . completion zsh         # zsh
//	go run . completion fish | source
//	go run . completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	go run . gen-docs ./docs/cli
package main
