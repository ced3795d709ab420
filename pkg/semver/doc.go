// Package semver merges two version specifiers declared for the same
// package into one.
//
// # Merge Rules
//
// [Merge] never synthesizes a new range. It always returns one of its two
// inputs, so every merged specifier can be traced back to a declaration:
//
//   - Equal literals merge to themselves (this also covers two equal
//     "file:" paths).
//   - The wildcard "*" accepts anything and yields the other side.
//   - Two caret ranges merge to whichever one's base version satisfies the
//     other, checking the first argument first. "^0.5.1" and "^0.5.0" merge
//     to "^0.5.1".
//   - A caret range and a bare version merge to the bare version when it
//     satisfies the range.
//   - Anything else, including malformed ranges, is unmergeable.
//
// The rules are order-sensitive and deliberately not an interval
// intersection: "^1.0.0" and ">=1.5.0" do not merge even though the two
// ranges overlap.
//
// Range satisfiability is delegated to [github.com/Masterminds/semver/v3],
// whose caret semantics match npm's, including the 0.x special cases.
package semver
