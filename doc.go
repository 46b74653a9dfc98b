// Package codec documents the module root: github.com/coreframe/codec
// is a multi-codec lossless compression core. It fronts seven codecs
// (LZ4, LZ4HC, Snappy, Zlib/Deflate, Bzip2, LZMA, Zstandard) behind a
// single façade in the codec subpackage, and adds a parallel framing
// layer, Randomly Accessible Partitions, in the rap subpackage, which
// lets a multi-threaded encoder split large inputs across workers and
// still produce output a single-threaded decoder can read
// sequentially.
//
//   - codec/   — the Codec interface, per-algorithm level clamping,
//     and the CreateCodec/GetCodec factories.
//   - rap/     — partition planning, the fork-join worker pool, and
//     the splice/header format that ties worker output back together.
//   - internal/ — the engines and adapters each codec is built on:
//     a from-scratch LZ4 block engine, a Bzip2 streaming state
//     machine, and thin adapters over the Zlib, Snappy, LZMA, and
//     Zstandard ecosystem libraries.
//
// There is no exported API at this root package; it exists to carry
// the module-level doc comment.
package codec
