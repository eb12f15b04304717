// Package cypress reads Cypress configuration files and turns them into spec
// file lists.
//
// Two schema generations are supported:
//
//   - cypress.json (Cypress 9 and older): flat integrationFolder,
//     componentFolder, testFiles and ignoreTestFiles keys.
//   - cypress.config.{ts,js,mjs,cjs} (Cypress 10+): a script exporting an
//     object with e2e and component sections, each with specPattern and
//     excludeSpecPattern.
//
// Each schema has an Adapter that resolves a ResolvedConfig of DiscoveryRules
// with every default filled in. The Parser picks exactly one adapter in a
// fixed order (cypress.config.ts, the plain scripts, cypress.json) and globs
// the rules through the discovery package.
//
// Script configs are transpiled to CommonJS with esbuild and evaluated in a
// goja runtime. The runtime has no filesystem or network access; require only
// resolves "cypress" (defineConfig), "path" and "process", and hands out an
// inert stub for anything else.
package cypress
