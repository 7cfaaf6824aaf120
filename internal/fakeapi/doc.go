// Package fakeapi is an in-memory stand-in for the storefront backend. It
// implements the REST contract the client expects, including its rough
// edges: some endpoints spell the success flag "sucess", some return bare
// arrays or unflagged objects, and documents carry "_id" keys. It exists for
// local development and end-to-end tests.
package fakeapi
