// Package generator renders templated fixture values.
//
// A raw value such as "user_${randomDigits(6)}" has every ${...} expression
// evaluated with expr-lang/expr and replaced by its result. The rendered
// value is stored in a Cache under the logical path of the value, so looking
// the same path up again within one run yields the same output. Values
// without expressions pass through untouched and are not cached.
//
// Expressions see two variables, path and raw, the expr built-ins, and the
// functions below:
//   - uuid(): a random RFC 4122 UUID
//   - randomString(n): n random ASCII letters
//   - randomDigits(n): n random decimal digits
//   - randomInt(min, max): a random integer in [min, max]
package generator
