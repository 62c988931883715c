// Package organizer sorts the files of a directory into category folders.
//
// Organize validates the source directory, takes a full snapshot of the
// candidate files, classifies each one through a catalog.Table, and moves it
// into <base>/<category>, where base is the source directory or, in recursive
// mode, the file's own parent. Nothing is mutated before the snapshot is
// complete, so a file is moved at most once per run.
//
// Per-file problems (folder creation, rename, collisions) become Failed
// outcomes in the Summary and the run carries on. Only source validation,
// enumeration, journal setup, and cancellation end a run early.
//
// Directories named after a category (or Others) below the source root are
// treated as already organized: recursive runs do not descend into them, which
// makes a second run over the same tree a no-op.
//
// Undo replays a journaled run backwards, moving each file to where it came
// from and removing category folders the run left empty.
package organizer
