// Package matrix22 multiplies a 2x2 matrix of limb vectors by another, the
// cofactor update at the heart of subquadratic GCD.
//
// The first matrix X holds four xsLen-limb entries; the second matrix Y holds
// four ysLen-limb entries. Mul overwrites X with X·Y in place; each result
// entry occupies xsLen+ysLen+1 limbs.
//
// Two algorithms are provided. Below StrassenThreshold the schoolbook method
// uses eight full products. From the threshold up, the Strassen-like scheme
// due to Bodrato uses seven products and fifteen additions, trading a larger
// scratch area for one fewer multiplication. Both produce identical results.
//
// The kernel allocates nothing except inside very large products, keeps no
// global state and may run concurrently on disjoint buffers.
package matrix22
