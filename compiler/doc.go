/*

Process of compilation

Program Text ->
	lexer ->
Tokens ->
	parser ->
Abstract Syntax Tree (ast) ->
	preprocess locals ->
Frame Layout (symtab) ->
	emit ->
Assembly Text (nasm, x86-64) ->
	nasm + cc ->
Binary Executable

*/
package compiler
