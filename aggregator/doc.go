// Package aggregator 账本聚合引擎
//
// 所有函数均为纯函数：只读取传入的快照，不修改输入，不缓存结果。
// 未知的ID不会报错，而是得到零值或空序列。
package aggregator
