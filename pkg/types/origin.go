// Package types 调用来源（Origin）类型定义
package types

import "fmt"

// OriginKind 调用来源的种类
type OriginKind int

const (
	// OriginNone 匿名来源（无签名者）
	OriginNone OriginKind = iota
	// OriginSigned 已签名来源（携带账户标识）
	OriginSigned
	// OriginRoot 系统级来源（由系统内部插入的命令）
	OriginRoot
)

// Origin 调用来源
//
// 🎯 **功能**：标识一次操作调用的授权级别
// 📋 **取值**：
//   - None: 匿名调用，无账户身份
//   - Signed: 携带已验证签名的账户调用
//   - Root: 系统根权限调用
//
// ⚠️ **注意**：签名本身的密码学验证由外部协作者完成，
// 内核只消费验证结果（Signed 即视为已验证）。
type Origin struct {
	kind   OriginKind
	signer AccountID
}

// NoneOrigin 构造匿名来源
func NoneOrigin() Origin {
	return Origin{kind: OriginNone}
}

// SignedOrigin 构造已签名来源
func SignedOrigin(who AccountID) Origin {
	return Origin{kind: OriginSigned, signer: who}
}

// RootOrigin 构造系统根来源
func RootOrigin() Origin {
	return Origin{kind: OriginRoot}
}

// Kind 返回来源种类
func (o Origin) Kind() OriginKind {
	return o.kind
}

// Signer 返回签名账户
// 仅当来源为 Signed 时第二个返回值为 true
func (o Origin) Signer() (AccountID, bool) {
	if o.kind != OriginSigned {
		return AccountID{}, false
	}
	return o.signer, true
}

// EnsureSigned 要求来源为已签名账户
// 来源不满足时返回 ErrBadOrigin
func (o Origin) EnsureSigned() (AccountID, error) {
	who, ok := o.Signer()
	if !ok {
		return AccountID{}, ErrBadOrigin
	}
	return who, nil
}

// EnsureRoot 要求来源为系统根权限
func (o Origin) EnsureRoot() error {
	if o.kind != OriginRoot {
		return ErrBadOrigin
	}
	return nil
}

// String 返回来源的可读表示
func (o Origin) String() string {
	switch o.kind {
	case OriginSigned:
		return fmt.Sprintf("Signed(%s)", o.signer)
	case OriginRoot:
		return "Root"
	default:
		return "None"
	}
}
