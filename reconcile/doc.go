// Package reconcile は2つの作業台帳を突き合わせる照合エンジンです。
//
// 処理は一方向に流れます:
//
//	生の台帳 → スプリント正規化 / キー抽出 → Match (3パス照合) → Categorizer (4分類)
//
// エンジンはエラーを返しません。欠損した値や解釈できない値は
// "No sprint" や "Unknown" などの番兵値に吸収されます。
// 処理は単一ゴルーチンで同期的に実行されます。
package reconcile
