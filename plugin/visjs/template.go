package visjs

// networkOptions is the fixed vis-network configuration: dot nodes,
// continuous edge smoothing, Barnes-Hut repulsion, and bounded
// stabilization so the layout settles before being shown.
const networkOptions = `{
  "nodes": {
    "shape": "dot",
    "size": 20,
    "font": {
      "size": 18,
      "face": "Tahoma",
      "background": "rgba(0,0,0,0.7)",
      "strokeWidth": 0,
      "color": "white"
    },
    "borderWidth": 2,
    "shadow": true
  },
  "edges": {
    "color": {
      "color": "rgba(255,255,255,0.5)",
      "highlight": "#ffffff"
    },
    "width": 1.5,
    "smooth": {
      "type": "continuous",
      "roundness": 0
    }
  },
  "physics": {
    "enabled": true,
    "barnesHut": {
      "gravitationalConstant": -4000,
      "centralGravity": 0.1,
      "springLength": 300,
      "springConstant": 0.02,
      "damping": 0.09,
      "avoidOverlap": 1
    },
    "stabilization": {
      "enabled": true,
      "iterations": 1000,
      "updateInterval": 50,
      "onlyDynamicEdges": false,
      "fit": true
    },
    "minVelocity": 0.75
  }
}`

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
<style>
  html, body { margin: 0; padding: 0; background-color: #0E1117; }
  #{{.ContainerID}} { width: 100%; height: 650px; background-color: #0E1117; }
</style>
</head>
<body>
<div id="{{.ContainerID}}"></div>
<script>
  var nodes = new vis.DataSet({{.Nodes}});
  var edges = new vis.DataSet({{.Edges}});
  var container = document.getElementById("{{.ContainerID}}");
  var options = {{.Options}};
  var network = new vis.Network(container, { nodes: nodes, edges: edges }, options);
  network.once("stabilizationIterationsDone", function () {
    network.fit();
  });
</script>
</body>
</html>`
